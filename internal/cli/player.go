package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a username or restore it on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			deviceID, err := cfg.LoadDeviceID()
			if err != nil {
				return fmt.Errorf("failed to load device id: %w", err)
			}

			req := map[string]string{"username": name}
			if deviceID != "" {
				req["device_id"] = deviceID
			}

			var result RegisterResult
			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			// Pin the server-assigned identifiers for later commands
			if err := cfg.SaveDeviceID(result.DeviceID); err != nil {
				return fmt.Errorf("failed to save device id: %w", err)
			}
			if err := cfg.SavePlayerID(result.Player.ID); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Username (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newFlipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flip",
		Short: "Flip the coin",
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := cfg.LoadPlayerID()
			if err != nil {
				return fmt.Errorf("failed to load player id: %w", err)
			}
			if playerID == "" {
				return fmt.Errorf("not registered; run 'moonrug register --name <username>' first")
			}

			req := map[string]string{"player_id": playerID}
			var result FlipResult

			if err := client.Post("/api/v1/flip", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
