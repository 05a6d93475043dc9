// Copyright (C) 2025 Opsmate, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included
// in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name(s) of the above copyright
// holders shall not be used in advertising or otherwise to promote the
// sale, use or other dealings in this Software without prior written
// authorization.

// Package sink implements destinations for published feed documents.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const defaultPerm = 0o644

var ErrNoS3 = errors.New("no S3 sink configured")

// File writes documents to the local filesystem. A destination is never
// observed partially written: data goes to a temporary file in the same
// directory which is then renamed over the destination.
type File struct {
	// Gzip additionally writes a compressed copy to destination + ".gz".
	Gzip bool
	Perm os.FileMode
}

func (f *File) WriteAll(ctx context.Context, destination string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	perm := f.Perm
	if perm == 0 {
		perm = defaultPerm
	}
	if err := replaceFile(destination, data, perm); err != nil {
		return err
	}
	if f.Gzip {
		compressed, err := compress(data)
		if err != nil {
			return fmt.Errorf("error compressing %s: %w", destination, err)
		}
		if err := replaceFile(destination+".gz", compressed, perm); err != nil {
			return err
		}
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func replaceFile(filename string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Chmod(perm); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filename)
}

// Router sends s3:// destinations to S3 and everything else to File.
type Router struct {
	File *File
	S3   *S3
}

func (r *Router) WriteAll(ctx context.Context, destination string, data []byte) error {
	if IsS3URL(destination) {
		if r.S3 == nil {
			return fmt.Errorf("%s: %w", destination, ErrNoS3)
		}
		return r.S3.WriteAll(ctx, destination, data)
	}
	file := r.File
	if file == nil {
		file = new(File)
	}
	return file.WriteAll(ctx, destination, data)
}

func IsS3URL(destination string) bool {
	return strings.HasPrefix(destination, s3Scheme)
}
