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

package device

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/blueprint/parser"
	"github.com/google/blueprint/pathtools"
	"github.com/google/blueprint/proptools"

	"android/emudevice/android"
)

type deviceProperties struct {
	Name string

	Horizontal_resolution *int64
	Vertical_resolution   *int64
	Ram                   *int64
	Screen_density        *int64
	Cache                 *int64
	Vm_heap               *int64

	// Reference to a filegroup module (":name") holding exactly one
	// source.properties file and zero or more image files.
	System_image string

	// Optional properties file passed through to the boot action.
	Default_properties string

	// APKs installed on the booted image.  May be empty.
	Platform_apks []string
}

type filegroupProperties struct {
	Name string
	Srcs []string
}

// File holds the module definitions parsed out of one blueprint file.
type File struct {
	devices    map[string]*deviceProperties
	filegroups map[string]*filegroupProperties
}

// ParseBlueprint reads android_device and filegroup definitions from a
// blueprint-syntax file.
func ParseBlueprint(from string, r io.Reader) (*File, []error) {
	scope := parser.NewScope(nil)
	file, errs := parser.ParseAndEval(from, r, scope)
	if len(errs) > 0 {
		return nil, errs
	}

	f := &File{
		devices:    make(map[string]*deviceProperties),
		filegroups: make(map[string]*filegroupProperties),
	}

	for _, def := range file.Defs {
		switch def := def.(type) {
		case *parser.Module:
			errs = append(errs, f.addModule(def)...)
		case *parser.Assignment:
			// Already handled via the scope.
		default:
			panic("unknown definition type")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return f, nil
}

func (f *File) addModule(def *parser.Module) []error {
	switch def.Type {
	case "android_device":
		props := &deviceProperties{}
		_, errs := proptools.UnpackProperties(def.Properties, props)
		if len(errs) > 0 {
			return errs
		}
		if props.Name == "" {
			return []error{fmt.Errorf("name property must be set")}
		}
		if _, dup := f.devices[props.Name]; dup {
			return []error{fmt.Errorf("duplicate android_device module %q", props.Name)}
		}
		f.devices[props.Name] = props
		return nil

	case "filegroup":
		props := &filegroupProperties{}
		_, errs := proptools.UnpackProperties(def.Properties, props)
		if len(errs) > 0 {
			return errs
		}
		if props.Name == "" {
			return []error{fmt.Errorf("name property must be set")}
		}
		if _, dup := f.filegroups[props.Name]; dup {
			return []error{fmt.Errorf("duplicate filegroup module %q", props.Name)}
		}
		f.filegroups[props.Name] = props
		return nil

	default:
		return []error{fmt.Errorf("unsupported module type %q", def.Type)}
	}
}

// Definition is one resolved android_device module: validated-shape
// attributes plus resolved file references.  Bounds checking happens
// later, in AssembleTarget.
type Definition struct {
	Name              string
	Attributes        DeviceAttributes
	SystemImage       Filegroup
	DefaultProperties android.Artifact
	PlatformApks      android.Artifacts
}

// ResolveDevice looks up the named android_device module and resolves its
// file references against fs.  All resolution errors are accumulated and
// returned together.
func (f *File) ResolveDevice(name string, fs pathtools.FileSystem, cfg android.Config) (*Definition, []error) {
	props, ok := f.devices[name]
	if !ok {
		return nil, []error{fmt.Errorf("unknown android_device module %q", name)}
	}

	var errs []error
	requireInt := func(v *int64, attribute string) int {
		if v == nil {
			errs = append(errs, fmt.Errorf("%s property must be set", attribute))
			return 0
		}
		return int(*v)
	}

	def := &Definition{
		Name: name,
		Attributes: DeviceAttributes{
			HorizontalResolution: requireInt(props.Horizontal_resolution, "horizontal_resolution"),
			VerticalResolution:   requireInt(props.Vertical_resolution, "vertical_resolution"),
			RAM:                  requireInt(props.Ram, "ram"),
			ScreenDensity:        requireInt(props.Screen_density, "screen_density"),
			Cache:                requireInt(props.Cache, "cache"),
			VMHeap:               requireInt(props.Vm_heap, "vm_heap"),
		},
	}

	if props.System_image == "" {
		errs = append(errs, fmt.Errorf("system_image property must be set"))
	} else if label, ok := strings.CutPrefix(props.System_image, ":"); !ok {
		errs = append(errs, fmt.Errorf("system_image must be a filegroup reference, got %q", props.System_image))
	} else if fg, ok := f.filegroups[label]; !ok {
		errs = append(errs, fmt.Errorf("system_image references unknown filegroup %q", label))
	} else {
		files, fgErrs := resolveSrcs(fg.Srcs, label, fs, cfg)
		errs = append(errs, fgErrs...)
		def.SystemImage = Filegroup{Label: label, Files: files}
	}

	if props.Default_properties != "" {
		a, err := resolveFile(props.Default_properties, fs, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("default_properties: %w", err))
		} else {
			def.DefaultProperties = a
		}
	}

	for _, apk := range props.Platform_apks {
		a, err := resolveFile(apk, fs, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("platform_apks: %w", err))
			continue
		}
		def.PlatformApks = append(def.PlatformApks, a)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return def, nil
}

// resolveSrcs expands a filegroup's srcs, supporting globs, into source
// artifacts.  Glob matches are sorted so the filegroup contents are
// stable across builds.
func resolveSrcs(srcs []string, label string, fs pathtools.FileSystem, cfg android.Config) (android.Artifacts, []error) {
	var files android.Artifacts
	var errs []error
	for _, src := range srcs {
		if pathtools.IsGlob(src) {
			result, err := fs.Glob(src, nil, pathtools.FollowSymlinks)
			if err != nil {
				errs = append(errs, fmt.Errorf("filegroup %q: glob %q: %w", label, src, err))
				continue
			}
			matches := append([]string(nil), result.Matches...)
			sort.Strings(matches)
			for _, match := range matches {
				files = append(files, cfg.SourceArtifact(match))
			}
			continue
		}

		a, err := resolveFile(src, fs, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("filegroup %q: %w", label, err))
			continue
		}
		files = append(files, a)
	}
	return files, errs
}

func resolveFile(path string, fs pathtools.FileSystem, cfg android.Config) (android.Artifact, error) {
	exists, isDir, err := fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%q does not exist", path)
	}
	if isDir {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	return cfg.SourceArtifact(path), nil
}
