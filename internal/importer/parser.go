package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/GiftPack/internal/model"
)

// ParseResult holds a parsed problem together with the region lines that had
// to be skipped.
type ParseResult struct {
	Problem  model.Problem
	Errors   []string
	Warnings []string
}

// ParseProblemFile reads a puzzle input file. See ParseProblem for the format.
func ParseProblemFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("cannot open input: %w", err)
	}
	defer f.Close()

	return ParseProblem(f)
}

// ParseProblem reads the present catalog followed by the region list.
//
// Presents are blocks introduced by an "N:" line and followed by rows of '.'
// and '#', separated by blank lines. Regions are lines of the form
// "WxH: c0 c1 ...", one count per catalog present.
//
// A malformed present is fatal, since every region refers to presents by
// position. So is a region whose count list does not match the catalog
// length. Any other malformed region line is recorded in Errors and skipped.
func ParseProblem(r io.Reader) (ParseResult, error) {
	var (
		result   ParseResult
		presents []model.Present
		regions  []model.Region
		header   string
		rows     []string
		startAt  int
		inRegion bool
	)

	flush := func() error {
		if header == "" {
			return nil
		}
		p, err := model.ParsePresent(rows...)
		if err != nil {
			return fmt.Errorf("present %s at line %d: %w", header, startAt, err)
		}
		if p.CellCount() == 0 {
			return fmt.Errorf("present %s at line %d has no cells", header, startAt)
		}
		if n, _ := strconv.Atoi(header); n != len(presents) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Line %d: present %s is number %d in the catalog", startAt, header, len(presents)))
		}
		p.Index = len(presents)
		p.Label = "Present " + header
		presents = append(presents, p)
		header, rows = "", nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			if err := flush(); err != nil {
				return ParseResult{}, err
			}

		case isRegionLine(line):
			if err := flush(); err != nil {
				return ParseResult{}, err
			}
			inRegion = true
			region, err := ParseRegion(line, len(presents))
			if errors.Is(err, model.ErrPresentCountMismatch) {
				return ParseResult{}, fmt.Errorf("line %d: %w", lineNum, err)
			}
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNum, err))
				continue
			}
			regions = append(regions, region)

		case strings.HasSuffix(line, ":"):
			if inRegion {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Line %d: present %q after the region list", lineNum, line))
				continue
			}
			if err := flush(); err != nil {
				return ParseResult{}, err
			}
			header = strings.TrimSuffix(line, ":")
			if _, err := strconv.Atoi(header); err != nil {
				return ParseResult{}, fmt.Errorf("line %d: invalid present header %q", lineNum, line)
			}
			startAt = lineNum

		default:
			if header == "" {
				if inRegion {
					result.Errors = append(result.Errors, fmt.Sprintf("Line %d: unrecognized line %q", lineNum, line))
					continue
				}
				return ParseResult{}, fmt.Errorf("line %d: shape row %q outside a present", lineNum, line)
			}
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("cannot read input: %w", err)
	}
	if err := flush(); err != nil {
		return ParseResult{}, err
	}

	if len(presents) == 0 {
		return ParseResult{}, errors.New("no presents found")
	}
	if len(regions) == 0 {
		result.Warnings = append(result.Warnings, "No regions found")
	}

	problem, err := model.NewProblem(presents, regions)
	if err != nil {
		return ParseResult{}, err
	}
	result.Problem = problem
	return result, nil
}

// isRegionLine reports whether the text before the first colon looks like
// "WxH". Present headers never contain an 'x'.
func isRegionLine(line string) bool {
	dims, _, ok := strings.Cut(line, ":")
	return ok && strings.Contains(dims, "x")
}

// ParseRegion parses a "WxH: c0 c1 ..." line. When presents is positive the
// number of counts must match it.
func ParseRegion(line string, presents int) (model.Region, error) {
	dims, rest, ok := strings.Cut(line, ":")
	if !ok {
		return model.Region{}, fmt.Errorf("missing ':' in region %q", line)
	}
	w, h, err := ParseDimensions(strings.TrimSpace(dims))
	if err != nil {
		return model.Region{}, err
	}

	fields := strings.Fields(rest)
	counts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return model.Region{}, fmt.Errorf("invalid present count %q in region %s", f, dims)
		}
		counts = append(counts, n)
	}
	if presents > 0 && len(counts) != presents {
		return model.Region{}, fmt.Errorf("region %s has %d counts for %d presents: %w",
			strings.TrimSpace(dims), len(counts), presents, model.ErrPresentCountMismatch)
	}

	return model.NewRegion(w, h, counts), nil
}

// ParseDimensions parses "WxH" into a width and height.
func ParseDimensions(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid dimensions %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w < 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}
