package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsh2dsh/imgtag"
)

func newUsedCmd() *cobra.Command {
	var mediaDir string

	cmd := &cobra.Command{
		Use:     "used <name>...",
		Short:   "Mark local media files as used and print the ones found",
		Example: `  imgtag used --media-dir ./images File:Example.png Image:Logo.svg`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(mediaDir)
			if err != nil {
				return fmt.Errorf("%w: media dir: %v", ErrInvalidInput, err)
			} else if !info.IsDir() {
				return fmt.Errorf("%w: media dir %q is not a directory",
					ErrInvalidInput, mediaDir)
			}

			r := newDirRegistry(mediaDir)
			for _, name := range args {
				imgtag.MarkFileAsUsed(name, r)
			}
			for _, title := range r.Used() {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaDir, "media-dir", ".", "Directory of local media files")
	return cmd
}

// dirRegistry is a media registry backed by files of a directory. It
// remembers every used file once, in order of first usage.
type dirRegistry struct {
	dir  string
	used []string
	seen map[string]struct{}
}

func newDirRegistry(dir string) *dirRegistry {
	return &dirRegistry{dir: dir, seen: make(map[string]struct{})}
}

func (self *dirRegistry) Resolve(name string) (string, bool) {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	info, err := os.Stat(filepath.Join(self.dir, name))
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return "File:" + name, true
}

func (self *dirRegistry) RecordUsage(title string) {
	if _, ok := self.seen[title]; ok {
		return
	}
	self.seen[title] = struct{}{}
	self.used = append(self.used, title)
}

func (self *dirRegistry) Used() []string { return self.used }
