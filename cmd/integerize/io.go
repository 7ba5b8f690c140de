package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/integerize/ndarray"
)

// readJSON decodes the file at path ("-" for stdin) into v, rejecting
// unknown fields.
func readJSON(env *runEnv, path string, v any) error {
	var (
		raw []byte
		err error
	)
	if path == "-" || path == "" {
		raw, err = io.ReadAll(env.in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err = dec.Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	return nil
}

func writeJSON(env *runEnv, v any) error {
	enc := json.NewEncoder(env.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// arrayDoc is the JSON form of an N-dimensional array: shape plus
// row-major data.
type arrayDoc struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

func (d arrayDoc) array() (*ndarray.Array, error) {
	a, err := ndarray.FromSlice(d.Shape, d.Data)
	if err != nil {
		return nil, fmt.Errorf("input array: %w", err)
	}

	return a, nil
}

// intArrayDoc is the JSON form of an integral result.
type intArrayDoc struct {
	Shape []int `json:"shape"`
	Data  []int `json:"data"`
}

func intDoc(a *ndarray.Array) intArrayDoc {
	return intArrayDoc{Shape: a.Shape(), Data: a.Ints()}
}
