// SPDX-License-Identifier: Apache-2.0

package profiling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

const (
	CPUProfileFile    = "cpu.prof"
	MemoryProfileFile = "mem.prof"
)

// Start starts a CPU profile in the directory on input. The returned stop
// function ends it and writes a memory profile alongside it.
func Start(dir string) (stop func() error, err error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create profile directory: %w", err)
	}

	stopCPUProfile, err := StartCPUProfile(filepath.Join(dir, CPUProfileFile))
	if err != nil {
		return nil, err
	}

	return func() error {
		cpuErr := stopCPUProfile()
		return errors.Join(cpuErr, CreateMemoryProfile(filepath.Join(dir, MemoryProfileFile)))
	}, nil
}

func StartCPUProfile(fileName string) (func() error, error) {
	cpuFile, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return func() error {
		pprof.StopCPUProfile()
		return cpuFile.Close()
	}, nil
}

func CreateMemoryProfile(fileName string) error {
	memFile, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create memory profile file: %w", err)
	}
	defer memFile.Close()

	runtime.GC() // get up-to-date statistics
	// allocs matches go test -memprofile
	if err := pprof.Lookup("allocs").WriteTo(memFile, 0); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	return nil
}
