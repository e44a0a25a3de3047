package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"learning-hub/internal/admin"
	"learning-hub/internal/client"
	"learning-hub/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loginUser     string
	loginPassword string
	searchTerm    string
	fieldsFile    string
	importLang    string
	importColor   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := client.New(cfg.APIURL).Login(cmd.Context(), loginUser, loginPassword)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cred.Token)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage articles through the API",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles, optionally filtered by title",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reading needs no credential.
		console := newConsole(client.Credential{})
		err := console.Load(cmd.Context())
		console.SetSearch(searchTerm)
		console.Render(cmd.OutOrStdout())
		return err
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := readFields(cmd.InOrStdin())
		if err != nil {
			return err
		}
		cred, err := credential()
		if err != nil {
			return err
		}
		console := newConsole(cred)
		_, err = console.Create(cmd.Context(), fields)
		console.Render(cmd.OutOrStdout())
		return err
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an article with the fields in a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		fields, err := readFields(cmd.InOrStdin())
		if err != nil {
			return err
		}
		cred, err := credential()
		if err != nil {
			return err
		}
		console := newConsole(cred)
		_, err = console.Update(cmd.Context(), id, fields)
		console.Render(cmd.OutOrStdout())
		return err
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		cred, err := credential()
		if err != nil {
			return err
		}
		console := newConsole(cred)
		err = console.Delete(cmd.Context(), id)
		console.Render(cmd.OutOrStdout())
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Queue a web page to be imported as an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credential()
		if err != nil {
			return err
		}
		job, err := client.New(cfg.APIURL).Import(cmd.Context(), cred, args[0], importLang, importColor)
		if err != nil {
			return err
		}
		logger.Info("Import queued",
			zap.String("id", job.ID.String()),
			zap.String("url", job.URL))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "Admin username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Admin password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	listCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Case-insensitive title filter")
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVarP(&fieldsFile, "file", "f", "-", "JSON file with article fields (- for stdin)")
	}
	importCmd.Flags().StringVar(&importLang, "language", "", "Language tag for the imported article")
	importCmd.Flags().StringVar(&importColor, "color", "", "Theme color")
	importCmd.MarkFlagRequired("language")

	adminCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd, importCmd)
}

func credential() (client.Credential, error) {
	if cfg.Token == "" {
		return client.Credential{}, errors.New("no token: run 'hub login' and pass --token or set HUB_TOKEN")
	}
	return client.Credential{Token: cfg.Token}, nil
}

func newConsole(cred client.Credential) *admin.Console {
	return admin.NewConsole(client.New(cfg.APIURL), cred, logger)
}

func readFields(stdin io.Reader) (model.Fields, error) {
	var r io.Reader = stdin
	if fieldsFile != "-" {
		f, err := os.Open(fieldsFile)
		if err != nil {
			return model.Fields{}, err
		}
		defer f.Close()
		r = f
	}

	var fields model.Fields
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return model.Fields{}, fmt.Errorf("failed to parse article fields: %w", err)
	}
	return fields, nil
}
