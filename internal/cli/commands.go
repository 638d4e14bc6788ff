package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-image-studio/pkg/codec"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/workflow"
)

func newGenerateCommand(app *App) *cobra.Command {
	var prompt, ratio, out string
	var dataURL bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an image from a text prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			aspect, err := domain.ParseAspectRatio(ratio)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := app.studio(ctx, workflow.TabGenerate)
			if err != nil {
				return err
			}

			app.progress("Generating...")
			st, err := s.Generate().Submit(ctx, prompt, aspect)
			if err != nil {
				return err
			}
			return app.saveImage(st, out, "generated-image", dataURL)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "text describing the image")
	cmd.Flags().StringVarP(&ratio, "aspect-ratio", "a", string(domain.AspectSquare), "aspect ratio (1:1, 3:4, 4:3, 9:16, 16:9)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default generated-image.<ext>)")
	cmd.Flags().BoolVar(&dataURL, "data-url", false, "print the image as a data URL instead of writing a file")
	return cmd
}

func newEditCommand(app *App) *cobra.Command {
	var image, instruction, out string
	var dataURL bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply a text instruction to an existing image",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.studio(ctx, workflow.TabEdit)
			if err != nil {
				return err
			}
			if image != "" {
				payload, err := codec.ReadFile(image)
				if err != nil {
					return err
				}
				s.Edit().LoadImage(payload)
			}

			app.progress("Editing...")
			st, err := s.Edit().Submit(ctx, instruction)
			if err != nil {
				return err
			}
			return app.saveImage(st, out, "edited-image", dataURL)
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "image file to edit")
	cmd.Flags().StringVarP(&instruction, "instruction", "p", "", "edit instruction")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default edited-image.<ext>)")
	cmd.Flags().BoolVar(&dataURL, "data-url", false, "print the image as a data URL instead of writing a file")
	return cmd
}

func newAnalyzeCommand(app *App) *cobra.Command {
	var image, question string
	var deep bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask a question about an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.studio(ctx, workflow.TabAnalyze)
			if err != nil {
				return err
			}
			if image != "" {
				payload, err := codec.ReadFile(image)
				if err != nil {
					return err
				}
				s.Analyze().LoadImage(payload)
			}

			if deep {
				app.progress("Analyzing (extended reasoning, this can take a while)...")
			} else {
				app.progress("Analyzing...")
			}
			st, err := s.Analyze().Submit(ctx, question, deep)
			if err != nil {
				return err
			}
			return app.printText(st)
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "image file to analyze")
	cmd.Flags().StringVarP(&question, "question", "q", "", "question about the image (default: describe it)")
	cmd.Flags().BoolVar(&deep, "deep", false, "use the more capable model with extended reasoning")
	return cmd
}

func newSuggestionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "suggestions [generate|edit]",
		Short:     "Print example prompts",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(workflow.TabGenerate), string(workflow.TabEdit)},
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := workflow.TabGenerate
			if len(args) == 1 {
				t, err := workflow.ParseTab(args[0])
				if err != nil {
					return err
				}
				tab = t
			}

			var list []string
			switch tab {
			case workflow.TabGenerate:
				list = domain.GenerationSuggestions
			case workflow.TabEdit:
				list = domain.EditSuggestions
			default:
				return fmt.Errorf("no suggestions for %s", tab)
			}
			for _, s := range list {
				fmt.Fprintln(app.Out, s)
			}
			return nil
		},
	}
}
