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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"software.sslmate.com/src/atomgen/internal/definition"
	"software.sslmate.com/src/atomgen/internal/sink"
)

const (
	debounceInterval = 500 * time.Millisecond
	s3CacheControl   = "public, max-age=300, must-revalidate"
	watchedOps       = fsnotify.Write | fsnotify.Create | fsnotify.Rename
)

func main() {
	var flags struct {
		config string
		watch  bool
	}
	flag.StringVar(&flags.config, "config", "", "Path to feed definition file (JSON, or YAML with a .yaml extension)")
	flag.BoolVar(&flags.watch, "watch", false, "Keep running and regenerate feeds when the definition file changes")
	flag.Parse()

	if flags.config == "" {
		log.Fatal("-config flag not provided")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := generate(ctx, flags.config); err != nil {
		if !flags.watch {
			log.Fatal(err)
		}
		log.Printf("error generating feeds: %s", err)
	}
	if !flags.watch {
		return
	}
	if err := watch(ctx, flags.config); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, filename string) error {
	cfg, err := definition.Load(filename)
	if err != nil {
		return err
	}

	var s3Sink *sink.S3
	if lo.SomeBy(cfg.Feeds, func(f definition.Feed) bool { return sink.IsS3URL(f.Path) }) {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("error loading AWS config: %w", err)
		}
		s3Sink = &sink.S3{Config: awsCfg, CacheControl: s3CacheControl}
	}

	group, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Feeds {
		def := &cfg.Feeds[i]
		router := &sink.Router{File: &sink.File{Gzip: def.Gzip}, S3: s3Sink}
		group.Go(func() error {
			return publish(ctx, def, router)
		})
	}
	return group.Wait()
}

func publish(ctx context.Context, def *definition.Feed, router *sink.Router) error {
	feed, err := definition.Build(ctx, def)
	if err != nil {
		return err
	}
	warnings, err := feed.Publish(ctx, router)
	if err != nil {
		return err
	}
	log.Printf("wrote %s (%d entries, %d warnings)", feed.Path(), len(feed.Entries()), len(warnings))
	return nil
}

// watch regenerates all feeds whenever filename changes. The directory is
// watched rather than the file so that editors which replace the file by
// renaming keep triggering events. Regenerations run one at a time on a
// single worker, which has finished by the time watch returns.
func watch(ctx context.Context, filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("error watching %s: %w", filename, err)
	}
	target := filepath.Clean(filename)

	pending := make(chan struct{}, 1)
	stop := make(chan struct{})
	var worker sync.WaitGroup
	worker.Add(1)
	go func() {
		defer worker.Done()
		for {
			select {
			case <-stop:
				return
			case <-pending:
				log.Printf("%s changed, regenerating feeds", filename)
				if err := generate(ctx, filename); err != nil {
					log.Printf("error generating feeds: %s", err)
				}
			}
		}
	}()

	schedule := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
		close(stop)
		worker.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&watchedOps == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, schedule)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("error watching %s: %s", filename, err)
		}
	}
}
