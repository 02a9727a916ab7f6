/*
Package nuru is a library for maintaining NURUIMG character grid images and
the NURUPAL palettes they are drawn with.

Images only record the names of the palettes they were drawn with, so named
palettes are kept in a library alongside the built-in ones to be found again
when an image is loaded.
*/
package nuru

import (
	"encoding"
	"errors"
	"log"
	"os"
)

var errNotFound = errors.New("palette not found")

// Nuru ties a palette library to the operations on image and palette files.
type Nuru struct {
	lib    *Library
	logger *log.Logger
}

// New returns a Nuru using the palette library stored in file.
func New(file string, logger *log.Logger) (*Nuru, error) {
	lib, err := NewLibrary(file)
	if err != nil {
		return nil, err
	}
	return &Nuru{
		lib:    lib,
		logger: logger,
	}, nil
}

// Close closes the palette library.
func (n *Nuru) Close() error {
	return n.lib.Close()
}

// Library returns the palette library.
func (n *Nuru) Library() *Library {
	return n.lib
}

func writeFile(file string, m encoding.BinaryMarshaler) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return err
	}

	return f.Close()
}
