// Package sysinfo gathers facts about the host: operating system, Go
// runtime, network identity, disk, memory and CPU. Sections are collected
// concurrently and a failing section is reported in place rather than
// aborting the whole report.
package sysinfo

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Row is one labelled value.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is the result of one probe.
type Section struct {
	Name  string `json:"name"`
	Rows  []Row  `json:"rows,omitempty"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the probe succeeded.
func (s Section) OK() bool {
	return s.Error == ""
}

// Report is the full inspection result, sections in probe order.
type Report struct {
	Sections []Section    `json:"sections"`
	Took     time.Duration `json:"took_ns"`
}

// Probe collects the rows of one section.
type Probe struct {
	Name    string
	Collect func(ctx context.Context) ([]Row, error)
}

// Inspector runs probes.
type Inspector struct {
	probes []Probe
}

// NewInspector returns an Inspector with the given probes, or the host
// probes when none are given.
func NewInspector(probes ...Probe) *Inspector {
	if len(probes) == 0 {
		probes = HostProbes()
	}
	return &Inspector{probes: probes}
}

// Collect runs every probe concurrently. Each goroutine writes only its own
// slot of the result; probe errors are recorded on the section.
func (i *Inspector) Collect(ctx context.Context) *Report {
	start := time.Now()
	sections := make([]Section, len(i.probes))

	g, gctx := errgroup.WithContext(ctx)
	for idx, p := range i.probes {
		g.Go(func() error {
			sections[idx] = runProbe(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return &Report{Sections: sections, Took: time.Since(start)}
}

func runProbe(ctx context.Context, p Probe) (s Section) {
	s.Name = p.Name
	defer func() {
		if r := recover(); r != nil {
			s.Rows = nil
			s.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	rows, err := p.Collect(ctx)
	if err != nil {
		logger.WithError(err).WithField("section", p.Name).Debug("probe failed")
		s.Error = err.Error()
		return s
	}
	s.Rows = rows
	return s
}
