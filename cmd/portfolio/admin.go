package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"portfolio/internal/repositories"
	"portfolio/internal/services"
	"portfolio/internal/utils"
)

var (
	adminUsername string
	adminPassword string
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for admin.password_hash",
	Long:  "Reads the password from --password or the first line of stdin and prints its bcrypt hash.",
	RunE:  runHashPassword,
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a dashboard admin account",
	RunE:  runCreateAdmin,
}

func init() {
	hashPasswordCmd.Flags().StringVar(&adminPassword, "password", "", "Password to hash (default: read stdin)")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (default: read stdin)")
	_ = createAdminCmd.MarkFlagRequired("username")
}

func readPassword(in io.Reader) (string, error) {
	if adminPassword != "" {
		return adminPassword, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	pw, err := readPassword(cmd.InOrStdin())
	if err != nil {
		return err
	}
	hash, err := services.HashPassword(pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	pw, err := readPassword(cmd.InOrStdin())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := repositories.Open(cmd.Context(), cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repositories.RunMigrations(db); err != nil {
		return err
	}

	auth := services.NewAuthService(
		repositories.NewAdminRepository(db),
		utils.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)),
	)
	admin, err := auth.CreateAdmin(cmd.Context(), adminUsername, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (id %d)\n", admin.Username, admin.ID)
	return nil
}
