package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsh2dsh/imgtag"
)

func newRenderCmd(getPolicy func() *imgtag.Policy) *cobra.Command {
	return &cobra.Command{
		Use:     "render <src> [key=value...]",
		Short:   "Render an img tag from parser function arguments",
		Example: `  imgtag render https://upload.wikimedia.org/a.png alt=Example width=100`,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), getPolicy().RenderArgs(args...))
			return err
		},
	}
}

func newTagCmd(getPolicy func() *imgtag.Policy) *cobra.Command {
	return &cobra.Command{
		Use:     "tag [markup]",
		Short:   "Render an img tag from markup, read from stdin without argument",
		Example: `  imgtag tag '<img src="https://upload.wikimedia.org/a.png" onerror="x">'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var markup string
			if len(args) > 0 {
				markup = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read markup: %w", err)
				}
				markup = string(b)
			}

			name, attrs, err := imgtag.ParseTag(markup)
			if err != nil {
				return err
			} else if name != "img" {
				return fmt.Errorf("%w: expected img tag, got <%s>", ErrInvalidInput, name)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), getPolicy().Render(attrs))
			return err
		},
	}
}

func newValidateCmd(getPolicy func() *imgtag.Policy) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <url>...",
		Short: "Validate image URLs and print them clean",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := getPolicy()
			var rejected []string
			for _, rawurl := range args {
				clean, err := p.ValidateURL(rawurl)
				if err != nil {
					rejected = append(rejected, rawurl)
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), clean)
			}

			if len(rejected) > 0 {
				return fmt.Errorf("%w: %d of %d URLs rejected: %s", ErrInvalidInput,
					len(rejected), len(args), strings.Join(rejected, ", "))
			}
			return nil
		},
	}
}
