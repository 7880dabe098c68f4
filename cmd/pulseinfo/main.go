// Command pulseinfo prints sample-level properties of pulse shapes.
//
// Usage:
//
//	pulseinfo [flags] [shape-name ...]
//
// Without arguments it prints info for all known shapes.
//
// Examples:
//
//	pulseinfo gaussian
//	pulseinfo -duration 64 -amplitude 0.8 flattop rect
//	pulseinfo -duration 128 -beta 0.5 drag
//	pulseinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-pulse/pulse"
)

type shapeEntry struct {
	name     string
	generate func(duration, amplitude, sigma, tau, beta float64, opts ...pulse.Option) (*pulse.Waveform, error)
}

var registry = []shapeEntry{
	{"gaussian", func(d, a, sigma, _, _ float64, opts ...pulse.Option) (*pulse.Waveform, error) {
		return pulse.Gaussian{Duration: d, Amplitude: a, Sigma: sigma}.Generate(opts...)
	}},
	{"flattop", func(d, a, _, tau, _ float64, opts ...pulse.Option) (*pulse.Waveform, error) {
		return pulse.FlatTop{Duration: d, Amplitude: a, Tau: tau}.Generate(opts...)
	}},
	{"rect", func(d, a, _, _, _ float64, opts ...pulse.Option) (*pulse.Waveform, error) {
		return pulse.Rect{Duration: d, Amplitude: a}.Generate(opts...)
	}},
	{"drag", func(d, a, _, _, beta float64, opts ...pulse.Option) (*pulse.Waveform, error) {
		return pulse.Drag{Duration: d, Amplitude: a, Beta: beta}.Generate(opts...)
	}},
}

func main() {
	duration := flag.Float64("duration", 32, "pulse duration in ns")
	amplitude := flag.Float64("amplitude", 1.0, "peak amplitude")
	sigma := flag.Float64("sigma", math.NaN(), "gaussian standard deviation in ns (default duration/4)")
	tau := flag.Float64("tau", math.NaN(), "flattop edge length in ns (default duration/4)")
	beta := flag.Float64("beta", 0.0, "drag correction coefficient")
	dt := flag.Float64("dt", pulse.DefaultSampleInterval, "sample interval in ns")
	list := flag.Bool("list", false, "list available shape names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pulseinfo [flags] [shape-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints sample-level properties of pulse shapes.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all shapes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pulseinfo gaussian flattop\n")
		fmt.Fprintf(os.Stderr, "  pulseinfo -duration 64 -amplitude 0.8 rect\n")
		fmt.Fprintf(os.Stderr, "  pulseinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	if math.IsNaN(*sigma) {
		*sigma = *duration / 4
	}
	if math.IsNaN(*tau) {
		*tau = *duration / 4
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching pulse shapes\n")
		os.Exit(1)
	}

	printAnalysis(entries, *duration, *amplitude, *sigma, *tau, *beta, *dt)
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEntries(names []string) []shapeEntry {
	byName := make(map[string]shapeEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []shapeEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown shape %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

func printAnalysis(entries []shapeEntry, duration, amplitude, sigma, tau, beta, dt float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Shape\tSamples\tDuration [ns]\tPeak\tEnergy\tMean I\tMean Q\n")
	fmt.Fprintf(tw, "-----\t-------\t-------------\t----\t------\t------\t------\n")

	for _, e := range entries {
		wf, err := e.generate(duration, amplitude, sigma, tau, beta, pulse.WithSampleInterval(dt))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		peak := 0.0
		for _, m := range wf.Magnitudes() {
			if m > peak {
				peak = m
			}
		}
		energy := 0.0
		for _, p := range wf.Powers() {
			energy += p * wf.SampleInterval()
		}
		var meanI, meanQ float64
		if wf.Len() > 0 {
			for _, v := range wf.Values() {
				meanI += real(v)
				meanQ += imag(v)
			}
			meanI /= float64(wf.Len())
			meanQ /= float64(wf.Len())
		}

		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.6f\t%.6f\t%.6f\t%.6f\n",
			e.name, wf.Len(), wf.Duration(), peak, energy, meanI, meanQ)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
