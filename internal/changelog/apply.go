package changelog

import (
	"fmt"

	"github.com/ariel-frischer/tinychange/internal/fragment"
)

// MergeOptions configures a merge of a fragments directory into a changelog.
type MergeOptions struct {
	FragmentsDir string
	Changelog    string
	Categories   []string
	// Keep leaves fragment files in place after a successful merge.
	Keep bool
	// DryRun computes the new changelog without writing or deleting anything.
	DryRun bool
}

// MergeReport describes what a merge did.
type MergeReport struct {
	Fragments []fragment.Loaded
	// Strategy is only meaningful when Fragments is non-empty.
	Strategy Strategy
	// Content is the new changelog text.
	Content string
	// Written is true once the changelog file has been replaced.
	Written bool
	// Deleted lists fragment files removed after the write.
	Deleted []string
}

// MergeFiles loads all fragments, merges them into the changelog and deletes
// the consumed fragments.
//
// The changelog is written once, atomically, after the complete new text has
// been computed. Fragments are only deleted after that write succeeded, so a
// failure in between can at worst leave fragments to be merged again.
func MergeFiles(opts MergeOptions) (*MergeReport, error) {
	loaded, err := fragment.LoadDir(opts.FragmentsDir, opts.Categories)
	if err != nil {
		return nil, err
	}

	report := &MergeReport{Fragments: loaded}
	if len(loaded) == 0 {
		return report, nil
	}

	existing, err := ReadDocument(opts.Changelog)
	if err != nil {
		return nil, err
	}

	result, err := NewMerger(opts.Categories).Merge(existing, fragment.Changes(loaded))
	if err != nil {
		return nil, fmt.Errorf("merging into %s: %w", opts.Changelog, err)
	}
	report.Strategy = result.Strategy
	report.Content = result.Content

	if opts.DryRun {
		return report, nil
	}

	if err := WriteDocument(opts.Changelog, result.Content); err != nil {
		return nil, err
	}
	report.Written = true

	if opts.Keep {
		return report, nil
	}

	if err := fragment.Remove(loaded); err != nil {
		return report, fmt.Errorf("changelog was updated but fragments were not cleaned up: %w", err)
	}
	for _, l := range loaded {
		report.Deleted = append(report.Deleted, l.Path)
	}

	return report, nil
}

// CheckDocument verifies that the changelog at path has a structure the next
// merge can place changes into. A missing changelog passes.
func CheckDocument(path string, categories []string) error {
	existing, err := ReadDocument(path)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if _, err := NewMerger(categories).Merge(existing, nil); err != nil {
		return fmt.Errorf("merging into %s: %w", path, err)
	}
	return nil
}
