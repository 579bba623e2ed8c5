// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// sortbench times the quicksort variants on deterministic pseudo-random
// input and verifies every run against a reference sort.
//
// Usage:
//
//	sortbench [-threads n] [-size n] [-iters n] [-seed n] [-config file.yaml] [-o out.json[.zst]]
//
// A YAML config file provides defaults; flags given explicitly on the
// command line win.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dchest/siphash"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/cpu"
	"sigs.k8s.io/yaml"

	"github.com/SnellerInc/parallel/fork"
	"github.com/SnellerInc/parallel/ints"
	"github.com/SnellerInc/parallel/par"
	"github.com/SnellerInc/parallel/sorting"
)

func fatalf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// Config is the benchmark configuration, settable through a YAML file
// and overridable with flags.
type Config struct {
	Threads      int      `json:"threads"`
	Size         int      `json:"size"`
	Iterations   int      `json:"iterations"`
	Seed         uint32   `json:"seed"`
	SeqThreshold int      `json:"seqThreshold"`
	ScanBlock    int      `json:"scanBlock"`
	TreeScan     bool     `json:"treeScan"`
	Variants     []string `json:"variants"`
}

func defaultConfig() Config {
	return Config{
		Threads:    runtime.GOMAXPROCS(0),
		Size:       1_000_000,
		Iterations: 5,
		Seed:       3,
	}
}

// Report is the JSON document written with -o.
type Report struct {
	ID       string    `json:"id"`
	Started  time.Time `json:"started"`
	CPU      string    `json:"cpu"`
	Config   Config    `json:"config"`
	Variants []Result  `json:"variants"`
}

// Result holds the timings of one variant.
type Result struct {
	Name      string    `json:"name"`
	Millis    []float64 `json:"millis"`
	AvgMillis float64   `json:"avgMillis"`
}

type variant struct {
	name string
	run  func(rp *sorting.RuntimeParameters, s []int32)
	strategy sorting.CopyStrategy
}

var allVariants = []variant{
	{name: "sequential", run: func(_ *sorting.RuntimeParameters, s []int32) { sorting.Quicksort(s) }},
	{name: "simple-parallel", run: sorting.SimpleParallel[int32]},
	{name: "parallel", run: sorting.Parallel[int32], strategy: sorting.CopySequential},
	{name: "parallel-forked-copy", run: sorting.Parallel[int32], strategy: sorting.CopyForked},
	{name: "parallel-blocked-copy", run: sorting.Parallel[int32], strategy: sorting.CopyBlocked},
	{name: "pargo", run: sorting.PargoParallel[int32]},
}

func main() {
	var configPath, outPath string
	cfg := defaultConfig()
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "worker pool size")
	flag.IntVar(&cfg.Size, "size", cfg.Size, "number of elements per run")
	flag.IntVar(&cfg.Iterations, "iters", cfg.Iterations, "iterations per variant")
	var seed uint
	flag.UintVar(&seed, "seed", uint(cfg.Seed), "xorshift seed (must be non-zero)")
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&outPath, "o", "", "write a JSON report here; a .zst suffix compresses it")
	flag.Parse()

	cfg.Seed = uint32(seed)
	if configPath != "" {
		fromFile := defaultConfig()
		buf, err := os.ReadFile(configPath)
		if err != nil {
			fatalf("reading config: %s", err)
		}
		if err := yaml.Unmarshal(buf, &fromFile); err != nil {
			fatalf("parsing config: %s", err)
		}
		cfg = merge(fromFile, cfg)
	}
	if cfg.Seed == 0 {
		fatalf("seed must be non-zero")
	}
	if cfg.Size <= 0 || cfg.Iterations <= 0 {
		fatalf("size and iters must be positive")
	}

	report := Report{
		ID:      uuid.NewString(),
		Started: time.Now().UTC(),
		CPU:     cpuSummary(),
		Config:  cfg,
	}
	fmt.Printf("run %s: %d elements, %d iterations, %d threads, %s\n",
		report.ID, cfg.Size, cfg.Iterations, cfg.Threads, report.CPU)

	pool := fork.NewPool(cfg.Threads)
	for _, v := range allVariants {
		if len(cfg.Variants) > 0 && !contains(cfg.Variants, v.name) {
			continue
		}
		rp := &sorting.RuntimeParameters{
			Tuning: &par.Tuning{
				Pool:         pool,
				SeqThreshold: cfg.SeqThreshold,
				ScanBlock:    cfg.ScanBlock,
				TreeScan:     cfg.TreeScan,
			},
			Copy: v.strategy,
		}
		report.Variants = append(report.Variants, benchVariant(v, rp, cfg))
	}

	if outPath != "" {
		if err := writeReport(outPath, &report); err != nil {
			fatalf("writing report: %s", err)
		}
	}
}

func benchVariant(v variant, rp *sorting.RuntimeParameters, cfg Config) Result {
	fmt.Printf("benchmarking %s\n", v.name)

	res := Result{Name: v.name}
	rnd := ints.NewRandom(cfg.Seed)
	for i := 1; i <= cfg.Iterations; i++ {
		arr := rnd.Slice(cfg.Size)
		expected := slices.Clone(arr)
		slices.Sort(expected)
		sum := multisetHash(arr)

		start := time.Now()
		v.run(rp, arr)
		elapsed := time.Since(start)

		if !slices.Equal(arr, expected) {
			fatalf("%s: iteration %d: output is not the reference ordering", v.name, i)
		}
		if multisetHash(arr) != sum {
			fatalf("%s: iteration %d: output is not a permutation of the input", v.name, i)
		}

		ms := float64(elapsed) / float64(time.Millisecond)
		fmt.Printf("  iteration %d: %.1f ms\n", i, ms)
		res.Millis = append(res.Millis, ms)
		res.AvgMillis += ms
	}
	res.AvgMillis /= float64(cfg.Iterations)
	fmt.Printf("  avg: %.1f ms\n", res.AvgMillis)
	return res
}

// siphash keys for the multiset checksum; arbitrary but fixed so runs
// are comparable
const (
	hashK0 = 0x736f727462656e63
	hashK1 = 0x68736970686b6579
)

// multisetHash sums a keyed hash of every element. The sum is
// insensitive to ordering, so it is preserved exactly by permutation
// and almost surely changed by dropped or duplicated elements.
func multisetHash(s []int32) uint64 {
	var buf [4]byte
	var sum uint64
	for _, v := range s {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		sum += siphash.Hash(hashK0, hashK1, buf[:])
	}
	return sum
}

func cpuSummary() string {
	feats := []string{runtime.GOARCH}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.X86.HasAVX512F {
		feats = append(feats, "avx512")
	}
	return strings.Join(feats, "+")
}

// merge overlays the flag values the user set explicitly on top of the
// file configuration.
func merge(file, flags Config) Config {
	def := defaultConfig()
	if flags.Threads != def.Threads {
		file.Threads = flags.Threads
	}
	if flags.Size != def.Size {
		file.Size = flags.Size
	}
	if flags.Iterations != def.Iterations {
		file.Iterations = flags.Iterations
	}
	if flags.Seed != def.Seed {
		file.Seed = flags.Seed
	}
	return file
}

func contains(list []string, s string) bool {
	for i := range list {
		if list[i] == s {
			return true
		}
	}
	return false
}

func writeReport(path string, report *Report) error {
	buf, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		buf = enc.EncodeAll(buf, nil)
		enc.Close()
	}
	return os.WriteFile(path, buf, 0644)
}
