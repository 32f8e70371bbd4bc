package main

import (
	"TaylorDAM/internal/api/config"
	"TaylorDAM/internal/job"
	"TaylorDAM/internal/pkg/database"
	"TaylorDAM/internal/pkg/logger"
	"TaylorDAM/internal/pkg/minio"
	"TaylorDAM/internal/pkg/redis"
	"TaylorDAM/internal/wire"
	"context"
	"flag"
	"fmt"
	log "log/slog"
	"os"

	"github.com/pkg/errors"
)

const usage = `usage: damctl <command> [flags]

commands:
  migrate [-down]                               apply or roll back database migrations
  create-admin -email -name -password           create an admin account
  update-password -email -password              reset a user's password
  cleanup                                       remove expired uploads and invitations
`

var errUsage = errors.New("invalid usage")

// command 解析后的子命令
type command struct {
	name     string
	down     bool
	email    string
	userName string
	password string
}

func parseCommand(args []string) (*command, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	cmd := &command{name: args[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	switch cmd.name {
	case "migrate":
		fs.BoolVar(&cmd.down, "down", false, "roll back the latest migration")
	case "create-admin":
		fs.StringVar(&cmd.email, "email", "", "admin email")
		fs.StringVar(&cmd.userName, "name", "", "admin display name")
		fs.StringVar(&cmd.password, "password", "", "admin password")
	case "update-password":
		fs.StringVar(&cmd.email, "email", "", "user email")
		fs.StringVar(&cmd.password, "password", "", "new password")
	case "cleanup":
	default:
		return nil, errors.Wrapf(errUsage, "unknown command %q", cmd.name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, errors.Wrap(errUsage, err.Error())
	}
	if fs.NArg() > 0 {
		return nil, errors.Wrapf(errUsage, "unexpected arguments %v", fs.Args())
	}

	switch cmd.name {
	case "create-admin":
		if cmd.email == "" || cmd.userName == "" || cmd.password == "" {
			return nil, errors.Wrap(errUsage, "create-admin requires -email, -name and -password")
		}
	case "update-password":
		if cmd.email == "" || cmd.password == "" {
			return nil, errors.Wrap(errUsage, "update-password requires -email and -password")
		}
	}
	return cmd, nil
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err = config.LoadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger.InitLogger()

	if err = run(context.Background(), cmd, config.Cfg); err != nil {
		fmt.Fprintln(os.Stderr, "damctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *command, cfg *config.Config) error {
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}

	switch cmd.name {
	case "migrate":
		if cmd.down {
			return database.Rollback(db)
		}
		return database.Migrate(db)

	case "create-admin":
		user, err := wire.BuildServices(db, cfg).User.CreateAdmin(ctx, cmd.email, cmd.userName, cmd.password)
		if err != nil {
			return errors.Wrap(err, "create admin")
		}
		fmt.Printf("admin created: %s <%s>\n", user.Name, user.Email)
		return nil

	case "update-password":
		if err = wire.BuildServices(db, cfg).User.ResetPassword(ctx, cmd.email, cmd.password); err != nil {
			return errors.Wrap(err, "update password")
		}
		fmt.Printf("password updated for %s\n", cmd.email)
		return nil

	case "cleanup":
		if err = redis.InitRedis(cfg.Redis); err != nil {
			return err
		}
		defer func() { _ = redis.Close() }()
		if err = minio.Init(); err != nil {
			return errors.Wrap(err, "init minio")
		}

		svc := wire.BuildServices(db, cfg)
		job.NewPendingUploadCleanupJob(svc.Upload, svc.KV).Run()
		job.NewInvitationCleanupJob(svc.Invitation, svc.KV).Run()
		log.Info("cleanup finished")
		return nil
	}
	return errUsage
}
