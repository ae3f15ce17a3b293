package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/bookshelf/internal/api/auth"
	"github.com/jon4hz/bookshelf/internal/config"
	"github.com/jon4hz/bookshelf/internal/database"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user",
	Long:  `Prompt for a username and password and insert an admin user directly into the database, bypassing the web signup.`,
	Run:   createAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}

func createAdmin(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("Enter admin username: ")
	if !scanner.Scan() {
		log.Fatal("failed to read username")
	}
	username := strings.TrimSpace(scanner.Text())
	if username == "" {
		log.Fatal("username must not be empty")
	}

	password, err := readPassword("Enter admin password: ")
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	if password == "" {
		log.Fatal("password must not be empty")
	}

	provider := auth.NewProvider(db)
	user, err := provider.RegisterAdmin(cmd.Context(), username, password)
	if err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Info("admin user created successfully", "username", user.Username, "id", user.ID)
}

// readPassword reads a password from the terminal with echo disabled.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}
