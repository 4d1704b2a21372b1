// Package htr hashes whole tree layers at once with gohashtree.
package htr

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gohashtree"
	"golang.org/x/sync/errgroup"
)

const minSliceSizeToParallelize = 5000

// VectorizedSha256 takes a list of roots and hashes them pairwise using CPU
// specific vector instructions, returning the parent layer. Large layers are
// split across GOMAXPROCS goroutines. The input is left untouched.
func VectorizedSha256(inputList [][32]byte) ([][32]byte, error) {
	if len(inputList)%2 == 1 {
		return nil, errors.Errorf("odd number of chunks: %d", len(inputList))
	}
	outputList := make([][32]byte, len(inputList)/2)
	if len(inputList) < minSliceSizeToParallelize {
		if err := gohashtree.Hash(outputList, inputList); err != nil {
			return nil, err
		}
		return outputList, nil
	}
	n := runtime.GOMAXPROCS(0)
	groupSize := len(inputList) / (2 * n)
	var g errgroup.Group
	for j := 0; j < n; j++ {
		in := inputList[j*2*groupSize : (j+1)*2*groupSize]
		out := outputList[j*groupSize : (j+1)*groupSize]
		if j == n-1 {
			in = inputList[j*2*groupSize:]
			out = outputList[j*groupSize:]
		}
		g.Go(func() error {
			return gohashtree.Hash(out, in)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputList, nil
}
