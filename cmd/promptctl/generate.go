package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/promptchain/internal/bootstrap"
	"github.com/phrazzld/promptchain/internal/domain"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		style      string
		characters string
		imagePath  string
		offline    bool
		combined   bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate IDEA",
		Short: "Generate image and video prompts for an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offline && combined {
				return fmt.Errorf("--offline and --combined cannot be used together")
			}

			var image []byte
			var mime string
			if imagePath != "" {
				var err error
				image, mime, err = readImageFile(imagePath)
				if err != nil {
					return err
				}
			}

			req, err := domain.NewGenerationRequest(
				strings.Join(args, " "),
				style,
				domain.ParseCharacterList(characters),
				image,
				mime,
			)
			if err != nil {
				return err
			}

			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				var result *domain.GenerationResult
				switch {
				case offline:
					result, err = c.Prompts.GenerateLocal(cmd.Context(), req)
				case combined:
					result, err = c.Prompts.GenerateCombined(cmd.Context(), req)
				default:
					result, err = c.Prompts.Generate(cmd.Context(), req)
				}
				if err != nil {
					return err
				}

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}
				printResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Photographic style hint")
	cmd.Flags().StringVar(&characters, "characters", "", "Comma-separated character keys")
	cmd.Flags().StringVar(&imagePath, "image", "", "Reference image to analyze")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use local templates only")
	cmd.Flags().BoolVar(&combined, "combined", false, "Use the single-call generator")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func readImageFile(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if info.Size() > domain.MaxImageBytes {
		return nil, "", domain.ErrImageTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%w: %s is not an image", domain.ErrValidation, path)
	}
	return data, mime, nil
}

func printResult(w io.Writer, r *domain.GenerationResult) {
	fmt.Fprintln(w, "Primary prompt:")
	fmt.Fprintln(w, r.PromptPrimaryLang)
	if r.HasSecondary() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Secondary prompt:")
		fmt.Fprintln(w, r.PromptSecondaryLang)
	}
	if r.VideoPrompt != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Video prompt:")
		fmt.Fprintln(w, r.VideoPrompt)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Model: %s\n", r.ModelInfo())
	fmt.Fprintf(w, "Translation: %s\n", r.TranslationStatus)
}
