package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kraftflix/movie-api/internal/core/service"
)

// hashPasswordCmd prints a bcrypt hash, handy for seeding users by hand.
func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Hash a password the way the API stores it",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost",
				Value: service.DefaultBcryptCost,
			},
		},
		Action: func(c *cli.Context) error {
			password := c.Args().First()
			if password == "" {
				line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			hash, err := service.NewPasswordHasher(c.Int("cost")).Hash(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}
