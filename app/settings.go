package app

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/daemon"
)

// ErrBadAssignment is returned for a set argument not shaped field=value.
var ErrBadAssignment = errors.New("expected field=value")

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(showCmd, setCmd, resetCmd, entitiesCmd)
}

var (
	showCmd = &cobra.Command{
		Use:   "show <entity>",
		Short: "Print the resolved settings of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: withReconciler(func(cmd *cobra.Command, r *appsettings.Reconciler, args []string) error {
			return runShow(cmd.Context(), r, args[0], cmd.OutOrStdout())
		}),
	}

	setCmd = &cobra.Command{
		Use:   "set <entity> field=value...",
		Short: "Change settings fields, leaving the others untouched",
		Example: `  appsettings set mail smtpHost=mail.example.com smtpPort=587
  appsettings set general maintenanceMode=true`,
		Args: cobra.MinimumNArgs(2), //nolint: mnd
		RunE: withReconciler(func(cmd *cobra.Command, r *appsettings.Reconciler, args []string) error {
			return runSet(cmd.Context(), r, args[0], args[1:], cmd.OutOrStdout())
		}),
	}

	resetCmd = &cobra.Command{
		Use:   "reset <entity> [field...]",
		Short: "Reset the named fields, or every field, to the defaults",
		Args:  cobra.MinimumNArgs(1),
		RunE: withReconciler(func(cmd *cobra.Command, r *appsettings.Reconciler, args []string) error {
			return runReset(cmd.Context(), r, args[0], args[1:], cmd.OutOrStdout())
		}),
	}

	entitiesCmd = &cobra.Command{
		Use:   "entities",
		Short: "List the registered entity types",
		Args:  cobra.NoArgs,
		RunE: withReconciler(func(cmd *cobra.Command, r *appsettings.Reconciler, _ []string) error {
			return runEntities(r, cmd.OutOrStdout())
		}),
	}
)

// withReconciler loads the config, opens the record store and hands the
// reconciler to fn.
func withReconciler(
	fn func(cmd *cobra.Command, r *appsettings.Reconciler, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		r, closeFn, err := daemon.OpenReconciler(&cfg)
		if err != nil {
			return err
		}

		defer func() {
			_ = closeFn()
		}()

		return fn(cmd, r, args)
	}
}

type resolvedOutput struct {
	ID     int64          `json:"id"`
	Type   string         `json:"type"`
	Values map[string]any `json:"values"`
}

func runShow(ctx context.Context, r *appsettings.Reconciler, entity string, w io.Writer) error {
	rec, err := r.Load(ctx, entity)
	if err != nil {
		return err
	}

	return writeJSON(w, resolvedOutput{ID: rec.ID, Type: rec.Type(), Values: rec.Values()})
}

func runSet(ctx context.Context, r *appsettings.Reconciler, entity string, pairs []string, w io.Writer) error {
	err := r.Update(ctx, entity, func(rec *appsettings.Record) error {
		for _, pair := range pairs {
			field, value, ok := strings.Cut(pair, "=")
			if !ok || field == "" {
				return errors.Wrap(ErrBadAssignment, pair)
			}

			if err := rec.SetFrom(field, value); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return runShow(ctx, r, entity, w)
}

func runReset(ctx context.Context, r *appsettings.Reconciler, entity string, fields []string, w io.Writer) error {
	err := r.Update(ctx, entity, func(rec *appsettings.Record) error {
		names := fields
		if len(names) == 0 {
			for _, f := range rec.Schema().Fields {
				names = append(names, f.Name)
			}
		}

		for _, field := range names {
			if err := rec.SetFrom(field, nil); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return runShow(ctx, r, entity, w)
}

func runEntities(r *appsettings.Reconciler, w io.Writer) error {
	return writeJSON(w, map[string][]string{"entities": r.Catalog().Types()})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
