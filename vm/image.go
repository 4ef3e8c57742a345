// This file is part of rvasm - https://github.com/db47h/rvasm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/db47h/rvasm/internal/ewriter"
)

// Image is a program image: instruction words to be loaded at address 0.
type Image []uint32

// Load reads a raw little endian image from r.
func Load(r io.Reader) (Image, error) {
	var (
		img Image
		b   [4]byte
		br  = bufio.NewReader(r)
	)
	for {
		n, err := io.ReadFull(br, b[:])
		if err != nil {
			if err == io.EOF {
				return img, nil
			}
			if err == io.ErrUnexpectedEOF {
				return nil, errors.Errorf("image size not a multiple of 4 (%d trailing bytes)", n)
			}
			return nil, errors.Wrap(err, "word read failed")
		}
		img = append(img, binary.LittleEndian.Uint32(b[:]))
	}
}

// LoadFile loads an image from file fileName.
func LoadFile(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	img, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return img, nil
}

// WriteTo writes the image to w as little endian words. It implements
// io.WriterTo.
func (img Image) WriteTo(w io.Writer) (n int64, err error) {
	ew := ewriter.New(w)
	for _, v := range img {
		ew.PutUint32(v)
		if ew.Err != nil {
			break
		}
		n += 4
	}
	return n, ew.Err
}

// Save saves the image to file fileName. The file is removed on error.
func (img Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = img.WriteTo(w)
	return err
}
