package options

import "github.com/spf13/cobra"

// WriteOptions
type WriteOptions struct {
	Message  string
	Template bool
}

func AddTemplateArg(cmd *cobra.Command, wo *WriteOptions) {
	cmd.Flags().BoolVarP(&wo.Template, "template", "t", false,
		"Start from the day's mindful template when no text is given.")
}

// CloseOptions hold the three close-out answers.
type CloseOptions struct {
	Lesson  string
	Carry   string
	Release string
}

func AddCloseArgs(cmd *cobra.Command, co *CloseOptions) {
	cmd.Flags().StringVar(&co.Lesson, "lesson", "",
		"What did this cycle teach me?")
	cmd.Flags().StringVar(&co.Carry, "carry", "",
		"What stays (what I carry forward)?")
	cmd.Flags().StringVar(&co.Release, "release", "",
		"What leaves (what I release)?")
}
