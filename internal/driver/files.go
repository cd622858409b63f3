package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Ext is the file extension collected from directories.
const Ext = ".ath"

// listSources возвращает отсортированный список всех *.ath файлов в директории
func listSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// CollectFiles expands directories to the *.ath files below them and keeps
// plain file arguments as given. The result is sorted and free of duplicates.
func CollectFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// missing files surface per file in the batch result
			out = append(out, filepath.Clean(arg))
			continue
		}
		if !info.IsDir() {
			out = append(out, filepath.Clean(arg))
			continue
		}
		files, err := listSources(arg)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		out = append(out, files...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
