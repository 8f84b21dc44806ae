// Package cli implements the backupsync operator tool: one-shot subcommands
// exposing the backup client's operations against a configured store.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/backupsync/internal/backup"
	"github.com/dmitrijs2005/backupsync/internal/backup/names"
	"github.com/dmitrijs2005/backupsync/internal/config"
	"github.com/dmitrijs2005/backupsync/internal/logging"
)

const usage = `usage: backupsync [flags] <command> [args]

commands:
  check                         verify the remote store is available
  reconcile                     cancel long-lived operations left by a previous run
  list [recipient]              list backup record names, optionally recipient-scoped
  manifests                     list recipient ids that own a manifest
  exists <name>                 check whether a record exists
  download <name> <dest>        download a record's payload to a file
  delete <name> [name...]       delete records by name
  upload-test <recipient>       save a small diagnostic test record

flags: -e endpoint, -r region, -b bucket, -u access key, -p key prefix,
       -t timeout seconds, -c/-config JSON config file
`

// client is the operation surface the App drives. The concrete
// *backup.Client satisfies it; tests can provide a stub.
type client interface {
	CheckAvailability(ctx context.Context) error
	ReconcileStartup(ctx context.Context)
	ListAll(ctx context.Context, recipientID string) ([]string, error)
	ListManifestRecipients(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, name string) (bool, error)
	DownloadTo(ctx context.Context, name, dest string) error
	Delete(ctx context.Context, recordNames ...string) error
	Save(ctx context.Context, blob []byte, name string) (string, error)
}

var _ client = (*backup.Client)(nil)

type App struct {
	config *config.Config
	client client
	log    logging.Logger
	out    io.Writer
}

func NewApp(cfg *config.Config, c client, log logging.Logger, out io.Writer) *App {
	return &App{config: cfg, client: c, log: log, out: out}
}

// Run dispatches one subcommand. args must already be stripped of config
// flags (see Positional). Every command runs under the configured
// per-operation timeout.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "check":
		return a.check(ctx)
	case "reconcile":
		a.client.ReconcileStartup(ctx)
		fmt.Fprintln(a.out, "reconciliation finished")
		return nil
	case "list":
		return a.list(ctx, rest)
	case "manifests":
		return a.manifests(ctx)
	case "exists":
		return a.exists(ctx, rest)
	case "download":
		return a.download(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "upload-test":
		return a.uploadTest(ctx, rest)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) check(ctx context.Context) error {
	if err := a.client.CheckAvailability(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "remote store is available")
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	recipient := ""
	if len(args) > 0 {
		recipient = args[0]
	}

	recordNames, err := a.client.ListAll(ctx, recipient)
	if err != nil {
		return err
	}
	for _, n := range recordNames {
		fmt.Fprintln(a.out, n)
	}
	fmt.Fprintf(a.out, "%d record(s)\n", len(recordNames))
	return nil
}

func (a *App) manifests(ctx context.Context) error {
	recipients, err := a.client.ListManifestRecipients(ctx)
	if err != nil {
		return err
	}
	for _, r := range recipients {
		fmt.Fprintln(a.out, r)
	}
	fmt.Fprintf(a.out, "%d manifest(s)\n", len(recipients))
	return nil
}

func (a *App) exists(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: exists <name>")
	}
	found, err := a.client.Exists(ctx, args[0])
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintln(a.out, "exists")
	} else {
		fmt.Fprintln(a.out, "absent")
	}
	return nil
}

func (a *App) download(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: download <name> <dest>")
	}
	name, dest := args[0], args[1]
	if err := a.client.DownloadTo(ctx, name, dest); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "downloaded %s to %s\n", name, dest)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: delete <name> [name...]")
	}
	if err := a.client.Delete(ctx, args...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d record(s)\n", len(args))
	return nil
}

func (a *App) uploadTest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: upload-test <recipient>")
	}
	name := names.TestFileName(args[0])
	saved, err := a.client.Save(ctx, []byte("backupsync diagnostic record"), name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved test record %s\n", saved)
	return nil
}
