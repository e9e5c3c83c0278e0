// Package main times the year2018 CLI against real repositories.
// Every report command runs several times without a cache, then several
// times against SQLite, where the first successful run is cold and the rest
// are averaged as warm. Results go to a CSV file under /tmp.
//
// Prerequisites:
// - year2018 binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir] [email]
//
//	repo-base-dir: Directory containing test repositories
//	email: Author email whose year is reported
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Email       string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	TestRepos   []string
	RepoYears   map[string]int
	Commands    []string
}

func main() {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: %s [repo-base-dir] [email]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:    os.Args[1],
		Email:       os.Args[2],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		TestRepos:   []string{"csv-parser", "fd", "git", "kubernetes"},
		RepoYears: map[string]int{
			"csv-parser": 2020,
			"fd":         2023,
			"git":        2024,
			"kubernetes": 2024,
		},
		Commands: []string{"summary", "languages", "merges", "days"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("year2018", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("year2018"); err != nil {
		return fmt.Errorf("year2018 binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every command against every repository
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, command))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d)\n", command, repo, config.RepoYears[repo])

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repo, repoPath, command, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a command several times and returns the cold time and the warm times
func runBenchmark(config BenchmarkConfig, repo, repoPath, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command,
		"--repo", repoPath,
		"--email", config.Email,
		"--year", fmt.Sprint(config.RepoYears[repo]),
		"--workers", fmt.Sprint(config.Workers),
		"--cache-backend", cacheBackend,
		"--color", "no",
	}

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "year2018", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/year2018_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results per command
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", strings.ToUpper(command[:1])+command[1:])
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
