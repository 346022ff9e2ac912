/*
Copyright (c) 2025 Mike Lane

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// reaperd watches the pods of one namespace and deletes those that have
// been running longer than a configured maximum age. It is configured
// entirely through environment variables (see internal/config) and exits
// non-zero on any fatal condition, relying on its supervisor to restart it
// with a freshly bootstrapped mirror.
package main

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/mikelane/reaperd/internal/config"
	"github.com/mikelane/reaperd/internal/culler"
	"github.com/mikelane/reaperd/internal/mirror"
	"github.com/mikelane/reaperd/internal/reaper"
	"github.com/mikelane/reaperd/internal/reflector"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg, _ := zap.NewProduction()
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	logger := newLogger(cfg.Debug)
	defer func() {
		_ = logger.Sync()
	}()

	client, err := newClientset()
	if err != nil {
		logger.Fatal("failed to create kubernetes client", zap.Error(err))
	}

	logger.Info("reaperd starting",
		zap.String("namespace", cfg.Namespace),
		zap.String("label-selector", cfg.LabelSelector),
		zap.Duration("max-age", cfg.MaxAge),
		zap.Duration("cull-interval", cfg.CullInterval),
	)

	m := mirror.New()
	refl := reflector.New(client, cfg.Namespace, cfg.LabelSelector, m, reflector.DefaultBackoffConfig(), logger)
	cul := culler.New(client, cfg.Namespace, cfg.MaxAge, m, logger)
	rp := reaper.New(refl, cul, cfg.CullInterval, logger)

	// Run blocks for the process lifetime; any return is fatal.
	if err := rp.Run(context.Background()); err != nil {
		logger.Fatal("reaperd terminated", zap.Error(err))
	}
}

// newLogger builds the process-wide structured logger.
func newLogger(debug bool) *zap.Logger {
	lcfg := zap.NewProductionConfig()
	lcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lcfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if debug {
		lcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := lcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// newClientset connects with in-cluster credentials, falling back to the
// local kubeconfig for out-of-cluster runs.
func newClientset() (kubernetes.Interface, error) {
	restCfg, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := filepath.Join(homedir.HomeDir(), ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, err
		}
	}

	return kubernetes.NewForConfig(restCfg)
}
