// Copyright 2024 Google Inc. All rights reserved.
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

// emudevice compiles one android_device definition into its launcher stub
// script and a boot action descriptor for an external executor.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/blueprint/pathtools"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"android/emudevice/android"
	"android/emudevice/device"
)

type options struct {
	bpFile       string
	deviceName   string
	manifestFile string
	workspace    string
	outDir       string
	outputDir    string
	constraints  []string
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "emudevice",
		Short:         "Compile an android_device definition into a launcher stub and boot action",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(logger, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.bpFile, "bp", "", "blueprint file holding the android_device definition")
	flags.StringVar(&opts.deviceName, "device", "", "name of the android_device module to compile")
	flags.StringVar(&opts.manifestFile, "manifest", "", "YAML manifest naming the host tool files")
	flags.StringVar(&opts.workspace, "workspace", "main", "workspace name inside the runfiles tree")
	flags.StringVar(&opts.outDir, "out-dir", "out", "exec-root-relative directory of generated artifacts")
	flags.StringVar(&opts.outputDir, "output", ".", "directory the stub script and boot descriptor are written to")
	flags.StringArrayVar(&opts.constraints, "constraint", nil, "executor constraint as key=value, repeatable")
	for _, name := range []string{"bp", "device", "manifest"} {
		cobra.CheckErr(rootCmd.MarkFlagRequired(name))
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Error("device target assembly failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, opts *options) error {
	cfg := android.Config{WorkspaceName: opts.workspace, OutDir: opts.outDir}

	constraints, err := parseConstraints(opts.constraints)
	if err != nil {
		return err
	}

	manifest, err := os.Open(opts.manifestFile)
	if err != nil {
		return err
	}
	defer manifest.Close()
	tools, errs := device.LoadToolManifest(manifest, cfg)
	if err := reportErrors(errs); err != nil {
		return err
	}

	bp, err := os.Open(opts.bpFile)
	if err != nil {
		return err
	}
	defer bp.Close()
	file, errs := device.ParseBlueprint(opts.bpFile, bp)
	if err := reportErrors(errs); err != nil {
		return err
	}

	def, errs := file.ResolveDevice(opts.deviceName, pathtools.OsFs, cfg)
	if err := reportErrors(errs); err != nil {
		return err
	}
	tools.DefaultProperties = def.DefaultProperties
	tools.PlatformApks = def.PlatformApks

	target, errs := device.AssembleTarget(cfg, def.Name, def.Attributes, def.SystemImage, tools, constraints)
	if err := reportErrors(errs); err != nil {
		return err
	}

	descriptor, err := target.BootAction.MarshalDescriptor()
	if err != nil {
		return err
	}

	stubPath := filepath.Join(opts.outputDir, target.StubScript.Output.Base())
	if err := pathtools.WriteFileIfChanged(stubPath, []byte(target.StubScript.Content), 0755); err != nil {
		return err
	}
	descriptorPath := filepath.Join(opts.outputDir, target.Name+"_boot_action.json")
	if err := pathtools.WriteFileIfChanged(descriptorPath, descriptor, 0644); err != nil {
		return err
	}

	logger.Info("device target assembled",
		zap.String("device", target.Name),
		zap.String("stub", stubPath),
		zap.String("descriptor", descriptorPath),
		zap.Int("common_deps", len(target.CommonDeps)))
	return nil
}

// reportErrors prints accumulated configuration errors one per line and
// collapses them into a single error for the command runner.
func reportErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return fmt.Errorf("%d configuration error(s)", len(errs))
}

func parseConstraints(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	constraints := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid constraint %q, want key=value", pair)
		}
		constraints[key] = value
	}
	return constraints, nil
}
