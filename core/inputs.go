package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/baijiangliang/year2018/internal/contract"
)

// cloneDir holds clones of remote repositories, under the base dir.
const cloneDir = "user_repos"

// ResolveRepos turns the configured repository inputs into local paths, in
// input order and without duplicates. Remote URLs are cloned on first use.
// Without inputs, the git work trees directly below the scan dir are used.
func ResolveRepos(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]string, error) {
	var paths []string
	if len(cfg.Repos) == 0 {
		found, err := scanRepos(ctx, client, cfg.ScanDir)
		if err != nil {
			return nil, err
		}
		paths = found
	}
	for _, repo := range cfg.Repos {
		path, err := resolveRepo(ctx, cfg, client, repo)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", repo), err)
			continue
		}
		paths = append(paths, path)
	}

	paths = dedupe(paths)
	if len(paths) == 0 {
		return nil, &contract.ConfigurationError{Msg: "no git repositories found"}
	}
	return paths, nil
}

func resolveRepo(ctx context.Context, cfg *contract.Config, client contract.GitClient, repo string) (string, error) {
	if !contract.IsRemoteURL(repo) {
		if filepath.IsAbs(repo) {
			return filepath.Clean(repo), nil
		}
		return filepath.Join(cfg.BaseDir, repo), nil
	}

	dir := filepath.Join(cfg.BaseDir, cloneDir, contract.RepoNameFromURL(repo))
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	contract.Logger().WithField("repo", repo).Info("Cloning repository")
	if err := client.Clone(ctx, repo, dir); err != nil {
		return "", err
	}
	return dir, nil
}

// scanRepos lists the non-hidden child directories of dir that are work trees.
func scanRepos(ctx context.Context, client contract.GitClient, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for repositories: %w", dir, err)
	}
	var paths []string
	for _, e := range entries { // sorted by name
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if ok, err := client.IsWorkTree(ctx, path); err == nil && ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	return slices.DeleteFunc(paths, func(p string) bool {
		if _, ok := seen[p]; ok {
			return true
		}
		seen[p] = struct{}{}
		return false
	})
}
