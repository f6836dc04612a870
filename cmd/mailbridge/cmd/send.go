package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

type sendFlags struct {
	data        map[string]string
	from        string
	replyTo     string
	subject     string
	text        string
	html        string
	templateDir string
	template    string
	layout      string
	to          []string
	cc          []string
	bcc         []string
	tags        []string
}

func newSendCmd(s *state) *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Long: `Send an email through the DSN's transport.

The body comes from --text/--html, or from a markdown --template rendered
with --data. Templates are read from --template-dir.

Examples:
  mailbridge send --to user@example.com --subject Hi --text 'Hello there'
  mailbridge send --to user@example.com --template welcome.md --data name=Ann`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(f.to) == 0 {
				return errors.New("at least one --to is required")
			}

			ctx, t, err := s.transport(cmd.Context(), cmd.Name())
			if err != nil {
				return err
			}

			var renderer *mailer.Renderer
			if f.template != "" {
				renderer = mailer.NewRendererWithConfig(os.DirFS(f.templateDir), mailer.RendererConfig{})
			}
			m := mailer.New(t, renderer, s.cfg.Mailer)

			tags := mailer.SimpleTags(f.tags...)

			if f.template != "" {
				if len(f.to) > 1 {
					return errors.New("templated sends take a single --to; use --cc or --bcc for more")
				}
				data := make(map[string]any, len(f.data))
				for k, v := range f.data {
					data[k] = v
				}
				err = m.Send(ctx, mailer.SendParams{
					Data:     data,
					To:       f.to[0],
					Template: f.template,
					Subject:  f.subject,
					Layout:   f.layout,
					From:     f.from,
					ReplyTo:  f.replyTo,
					Tags:     tags,
					CC:       f.cc,
					BCC:      f.bcc,
				})
			} else {
				err = m.SendRaw(ctx, &mailer.Email{
					From:    f.from,
					ReplyTo: f.replyTo,
					To:      f.to,
					CC:      f.cc,
					BCC:     f.bcc,
					Subject: f.subject,
					Text:    f.text,
					HTML:    f.html,
					Tags:    tags,
				})
			}
			if err != nil {
				s.log.ErrorContext(ctx, "send failed", slog.String("error", err.Error()))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent via %s\n", t)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "", "Sender address (default: $MAILER_FROM)")
	fl.StringVar(&f.replyTo, "reply-to", "", "Reply-To address")
	fl.StringSliceVar(&f.to, "to", nil, "Recipient (repeatable)")
	fl.StringSliceVar(&f.cc, "cc", nil, "Carbon copy recipient (repeatable)")
	fl.StringSliceVar(&f.bcc, "bcc", nil, "Blind carbon copy recipient (repeatable)")
	fl.StringVar(&f.subject, "subject", "", "Subject; overrides the template's")
	fl.StringVar(&f.text, "text", "", "Plain-text body")
	fl.StringVar(&f.html, "html", "", "HTML body")
	fl.StringVar(&f.templateDir, "template-dir", ".", "Directory holding templates and layouts/")
	fl.StringVar(&f.template, "template", "", "Markdown template file name")
	fl.StringVar(&f.layout, "layout", "", "Layout name (default: $MAILER_DEFAULT_LAYOUT)")
	fl.StringToStringVar(&f.data, "data", nil, "Template data as key=value")
	fl.StringSliceVar(&f.tags, "tag", nil, "Provider tag (repeatable)")

	return cmd
}
