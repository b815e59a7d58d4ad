package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Taishi66/folio-tui/internal/domain"
)

const prefetchConcurrency = 4

var featured int

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := setup(false)
		if err != nil {
			return err
		}
		defer svc.Close()

		var projects []domain.Project
		if featured > 0 {
			projects, err = svc.gateway.Featured(cmd.Context(), featured)
		} else {
			projects, err = svc.gateway.ListProjects(cmd.Context())
		}
		if err != nil {
			return friendly(err, svc.cfg.LocaleValue())
		}
		return writeProjects(cmd.OutOrStdout(), projects)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project <slug>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := setup(false)
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.gateway.GetProject(cmd.Context(), args[0])
		if err != nil {
			return friendly(err, svc.cfg.LocaleValue())
		}
		writeProject(cmd.OutOrStdout(), p)
		return nil
	},
}

var prefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Fetch every project detail to check the API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := setup(false)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := prefetch(cmd.Context(), svc.gateway, svc.logger)
		if err != nil {
			return friendly(err, svc.cfg.LocaleValue())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fetched %d projects\n", n)
		return nil
	},
}

func init() {
	projectsCmd.Flags().IntVar(&featured, "featured", 0, "only the first N projects")
}

// friendly turns a gateway failure into the message a user should see.
func friendly(err error, locale domain.Locale) error {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := domain.UserFriendlyMessage(apiErr)
	if locale == domain.LocaleEN && msg == domain.DefaultMessage(apiErr.Kind) {
		msg = domain.MessageFor(apiErr.Kind, locale)
	}
	return fmt.Errorf("%s [%s]", msg, apiErr.Kind)
}

func writeProjects(w io.Writer, projects []domain.Project) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLANGUAGE\tSTARS\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Language, p.Stars, dateOnly(p.UpdatedAt))
	}
	return tw.Flush()
}

func writeProject(w io.Writer, p domain.Project) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	fmt.Fprintf(w, "  language: %s  stars: %d  forks: %d\n", p.Language, p.Stars, p.Forks)
	if len(p.Topics) > 0 {
		fmt.Fprintf(w, "  topics:   %s\n", strings.Join(p.Topics, ", "))
	}
	if p.HTMLURL != "" {
		fmt.Fprintf(w, "  url:      %s\n", p.HTMLURL)
	}
	if p.Homepage != "" {
		fmt.Fprintf(w, "  homepage: %s\n", p.Homepage)
	}
}

func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// refresher is the part of the cached gateway prefetch drives. Details go
// through RefreshProject so every project costs a real request.
type refresher interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	RefreshProject(ctx context.Context, slug string) (domain.Project, error)
}

// prefetch lists the projects and then fetches every detail in parallel.
// The first failure cancels the rest. When the API is down the list is the
// offline fallback, and the detail requests are what report the outage.
func prefetch(ctx context.Context, gw refresher, logger *zap.Logger) (int, error) {
	projects, err := gw.ListProjects(ctx)
	if err != nil {
		return 0, err
	}

	var fetched atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for _, p := range projects {
		g.Go(func() error {
			if _, err := gw.RefreshProject(gctx, p.ID); err != nil {
				logger.Warn("prefetch failed", zap.String("project", p.ID), zap.Error(err))
				return err
			}
			fetched.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(fetched.Load()), err
	}
	return int(fetched.Load()), nil
}
