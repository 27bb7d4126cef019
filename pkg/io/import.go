package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pipeflow/pkg/errors"
	"github.com/matzehuels/pipeflow/pkg/network"
)

// ReadJSON decodes a report from r and checks that every solution parses as
// a path. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i, s := range rep.Solutions {
		if _, err := network.ParseState(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "solution %d", i+1)
		}
	}
	return &rep, nil
}

// ImportJSON reads a report from the JSON file at path.
func ImportJSON(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Pick returns solution n, counting from 1.
func (r *Report) Pick(n int) (network.State, error) {
	if n < 1 || n > len(r.Solutions) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "solution %d out of range (report has %d)", n, len(r.Solutions))
	}
	s, err := network.ParseState(r.Solutions[n-1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "solution %d", n)
	}
	return s, nil
}
