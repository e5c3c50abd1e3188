package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/render"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/validator"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	audience     = models.DefaultAudience()
	content      = models.DefaultContent()
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one piece of Instagram content",
		Long: `Validate the audience and content, request the AI analysis and print the report.

Examples:
  # Caption only
  smm analyze --location Jakarta --interests "fashion, kopi" --caption "Outfit hari ini!"

  # Post link for women aged 20-30, as JSON
  smm analyze --age-min 20 --age-max 30 --gender Wanita --location Bandung \
    --interests kuliner --link https://www.instagram.com/p/abc123/ -o json`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	genders := make([]string, 0, len(models.GenderOptions))
	for _, opt := range models.GenderOptions {
		genders = append(genders, opt.Value)
	}

	cmd.Flags().StringVar(&audience.AgeMin, "age-min", audience.AgeMin, "Minimum audience age")
	cmd.Flags().StringVar(&audience.AgeMax, "age-max", audience.AgeMax, "Maximum audience age")
	cmd.Flags().StringVar(&audience.Gender, "gender", audience.Gender, fmt.Sprintf("Audience gender (%s)", strings.Join(genders, ", ")))
	cmd.Flags().StringVarP(&audience.Location, "location", "l", "", "Audience location")
	cmd.Flags().StringVarP(&audience.Interests, "interests", "i", "", "Audience interests")
	cmd.Flags().StringVar(&content.Link, "link", "", "Instagram post link ("+models.InstagramLinkPrefix+"...)")
	cmd.Flags().StringVarP(&content.Caption, "caption", "c", "", "Post caption")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", render.FormatHuman, fmt.Sprintf("Output format (%s)", strings.Join(render.Formats, ", ")))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if !slices.Contains(render.Formats, outputFormat) {
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}

	requester, logger, cleanup, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := controller.New(requester, logger)
	for _, field := range models.AudienceFields {
		if err := ctrl.SetAudienceField(field, audience.Get(field)); err != nil {
			return err
		}
	}
	for _, field := range models.ContentFields {
		if err := ctrl.SetContentField(field, content.Get(field)); err != nil {
			return err
		}
	}

	sub, err := ctrl.Submit(cmd.Context())
	if err != nil {
		if errors.Is(err, validator.ErrValidation) {
			color.New(color.FgYellow).Fprintf(os.Stderr, "⚠️  %s\n", err)
		}
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Sedang Meracik Analisa Terbaik..."
	s.Writer = os.Stderr
	s.Start()
	report, err := sub.Wait(cmd.Context())
	s.Stop()

	if err != nil {
		if view := ctrl.Snapshot(); view.Error != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "❌ %s\n", *view.Error)
		}
		return err
	}

	return render.Write(os.Stdout, report, outputFormat)
}
