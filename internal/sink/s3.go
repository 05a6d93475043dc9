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

package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"software.sslmate.com/src/atomgen/atom"
)

const s3Scheme = "s3://"

// ObjectPutter is the subset of *s3.Client used by S3.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores documents as objects. Destinations have the form
// s3://bucket/key. If Client is nil, a client is created from Config.
type S3 struct {
	Config       aws.Config
	Client       ObjectPutter
	CacheControl string
}

func (s *S3) client() ObjectPutter {
	if s.Client != nil {
		return s.Client
	}
	return s3.NewFromConfig(s.Config, func(opts *s3.Options) {
		opts.EndpointOptions.UseDualStackEndpoint = aws.DualStackEndpointStateEnabled
		opts.DisableLogOutputChecksumValidationSkipped = true
	})
}

func (s *S3) WriteAll(ctx context.Context, destination string, data []byte) error {
	bucket, key, err := ParseS3URL(destination)
	if err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(atom.ContentType),
	}
	if s.CacheControl != "" {
		input.CacheControl = aws.String(s.CacheControl)
	}
	if _, err := s.client().PutObject(ctx, input); err != nil {
		return fmt.Errorf("error uploading %s: %w", destination, err)
	}
	return nil
}

func ParseS3URL(destination string) (bucket string, key string, err error) {
	rest, ok := strings.CutPrefix(destination, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%q is not an s3:// URL", destination)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q does not name a bucket and key", destination)
	}
	return bucket, key, nil
}
