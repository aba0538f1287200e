package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/coursemail"
	"github.com/dmitrymomot/coursemail/pkg/health"
	"github.com/dmitrymomot/coursemail/pkg/logger"
	"github.com/dmitrymomot/coursemail/pkg/mailer"
)

// exitError signals a failure that has already been reported on stdout.
type exitError struct{ reason string }

func (e exitError) Error() string { return e.reason }

const (
	templateWelcome    = "welcome"
	templateEnrollment = "enrollment"
	templateReset      = "reset"
)

var templateNames = []string{templateWelcome, templateEnrollment, templateReset}

type rootFlags struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "coursemail",
		Short:         "Render and send course platform emails",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the environment")

	cmd.AddCommand(newPreviewCmd(flags), newSendCmd(flags), newCheckCmd(flags))
	return cmd
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "preview <" + strings.Join(templateNames, "|") + ">",
		Short:     "Render a template with sample data to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: templateNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := coursemail.LoadConfig(flags.envFile)
			if err != nil {
				return err
			}
			catalog, err := coursemail.NewCatalog(cfg.Platform)
			if err != nil {
				return err
			}

			msg, err := renderSample(catalog, args[0], "student@example.com")
			if err != nil {
				return err
			}
			return writePreview(cmd.OutOrStdout(), msg, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output: html, text or subject")
	return cmd
}

func newSendCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send <" + strings.Join(templateNames, "|") + "> <to>",
		Short: "Send a template with sample data and print the result as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := coursemail.LoadConfig(flags.envFile)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log,
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithExtractors(mailer.DispatchIDAttr),
			)
			svc, err := coursemail.New(cfg, coursemail.WithLogger(log))
			if err != nil {
				return err
			}

			res, err := sendSample(cmd, svc, args[0], args[1])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res)
		},
	}
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify transport connectivity and templates without sending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coursemail.LoadConfig(flags.envFile)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log, logger.WithOutput(cmd.ErrOrStderr()))
			svc, err := coursemail.New(cfg, coursemail.WithLogger(log))
			if err != nil {
				return err
			}

			report := health.Run(cmd.Context(), svc.Checks(), health.WithTimeout(timeout), health.WithLogger(log))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return exitError{reason: err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "deadline for all checks")
	return cmd
}

func renderSample(c *coursemail.Catalog, name, to string) (*coursemail.Rendered, error) {
	switch name {
	case templateWelcome:
		return c.Welcome(sampleWelcome(to))
	case templateEnrollment:
		return c.Enrollment(sampleEnrollment(to))
	case templateReset:
		return c.PasswordReset(sampleReset(to))
	default:
		return nil, unknownTemplate(name)
	}
}

func sendSample(cmd *cobra.Command, svc *coursemail.Service, name, to string) (mailer.Result, error) {
	ctx := cmd.Context()
	switch name {
	case templateWelcome:
		return svc.SendWelcome(ctx, sampleWelcome(to)), nil
	case templateEnrollment:
		return svc.SendEnrollment(ctx, sampleEnrollment(to)), nil
	case templateReset:
		return svc.SendPasswordReset(ctx, sampleReset(to)), nil
	default:
		return mailer.Result{}, unknownTemplate(name)
	}
}

func unknownTemplate(name string) error {
	return fmt.Errorf("unknown template %q, expected one of: %s", name, strings.Join(templateNames, ", "))
}

func writePreview(w io.Writer, msg *coursemail.Rendered, format string) error {
	var out string
	switch format {
	case "html":
		out = msg.HTML
	case "text":
		out = msg.Text
	case "subject":
		out = msg.Subject
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func writeResult(w io.Writer, res mailer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if !res.Success {
		return exitError{reason: res.Error}
	}
	return nil
}

func sampleWelcome(to string) coursemail.WelcomeData {
	return coursemail.WelcomeData{
		FirstName: "John",
		LastName:  "Doe",
		Email:     to,
		UserType:  coursemail.RoleStudent,
	}
}

func sampleEnrollment(to string) coursemail.EnrollmentData {
	return coursemail.EnrollmentData{
		StudentName:      "John Doe",
		StudentEmail:     to,
		CourseTitle:      "Advanced Node.js",
		CourseInstructor: "Dr. Jane Smith",
		CourseLevel:      "Advanced",
		CourseDuration:   "8 weeks",
		EnrollmentDate:   time.Now(),
	}
}

func sampleReset(to string) coursemail.PasswordResetData {
	return coursemail.PasswordResetData{
		FirstName:     "John",
		LastName:      "Doe",
		Email:         to,
		ResetCode:     "482913",
		ExpiryMinutes: 15,
		UserType:      coursemail.RoleStudent,
	}
}
