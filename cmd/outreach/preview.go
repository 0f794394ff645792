package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/contacts"
	"github.com/jonathan/hr-outreach/internal/observability"
	"github.com/jonathan/hr-outreach/internal/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the personalized message for one contact",
	RunE:  runPreview,
}

var (
	previewContact string
	previewHTML    bool
)

// sampleContact is previewed when the contact table is missing or empty.
var sampleContact = types.Contact{Name: "Jane Doe", Title: "HR Manager", Company: "Example Corp", Email: "jane.doe@example.com"}

func init() {
	previewCmd.Flags().StringVar(&previewContact, "contact", "", "Email of the contact to preview (default: first contact)")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Print the HTML body instead of plain text")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	tpl, err := compose.LoadTemplate(cfg.EmailTemplateFile, cfg.Subject)
	if err != nil {
		return err
	}

	c, err := pickContact(cfg.HRContactsFile, previewContact)
	if err != nil {
		return err
	}

	msg, err := tpl.Personalize(c, cfg.Profile())
	if err != nil {
		return err
	}
	if previewHTML {
		msg.Text = msg.HTML
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintPreview(c, msg)
	return nil
}

func pickContact(path, email string) (types.Contact, error) {
	list, err := contacts.Load(path)
	if err != nil {
		if email == "" && errors.Is(err, os.ErrNotExist) {
			logger.Warn("preview.sample_contact", "reason", "contact table not found", "path", path)
			return sampleContact, nil
		}
		return types.Contact{}, err
	}

	if email == "" {
		if len(list) == 0 {
			return sampleContact, nil
		}
		return list[0], nil
	}
	key := types.EmailKey(email)
	for _, c := range list {
		if c.EmailKey() == key {
			return c, nil
		}
	}
	return types.Contact{}, fmt.Errorf("contact %s not found in %s", email, path)
}
