package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/lab"
)

// labSyncAction names the sync in the lab notification.
const labSyncAction = "bidirectional-sync"

// newLabCmd creates the lab command group.
func newLabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Sync agent profiles with the central lab registry",
		Long: `Publish this repository's agent profiles to the lab registry.

Settings come from .htdi-lab.config.json at the board root (comments
allowed): house.id names this repository, lab.registryPath points at the
registry JSON, and lab.apiUrl receives a notification after a sync.

Examples:
  taskboard lab register  # Add this house to the registry once
  taskboard lab sync      # Replace this house's agents from agents/profiles`,
	}
	cmd.AddCommand(newLabSyncCmd(), newLabRegisterCmd())
	return cmd
}

func newLabSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push agent profiles to the registry and notify the lab API",
		RunE:  runLabSync,
	}
}

func newLabRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register this house in an existing registry",
		RunE:  runLabRegister,
	}
}

func runLabSync(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	cfg, err := lab.LoadConfig(ws.cfg.LabConfigPath())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	if !cfg.Lab.Enabled {
		if printer.IsJSON() {
			return printer.Success(map[string]any{"enabled": false})
		}
		printer.Println("Lab integration is disabled in config")
		return nil
	}

	profilesDir := ws.cfg.ProfilesDir()
	agents, err := lab.ScanProfiles(profilesDir, ws.relative(profilesDir), ws.logger)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	registryPath := cfg.RegistryPath(ws.cfg.Root)
	result, err := lab.Sync(cfg, registryPath, agents, time.Now())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	registered, registryAgents := false, 0
	if reg, _, err := lab.LoadRegistry(registryPath); err == nil {
		if house := reg.House(cfg.House.ID); house != nil {
			registered, registryAgents = true, lab.AgentCount(house)
		}
	}

	notifyErr := lab.NewNotifier(nil, ws.logger).Notify(cmd.Context(), cfg, labSyncAction)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"enabled":         true,
			"house":           cfg.House.ID,
			"registry":        registryPath,
			"sync":            result,
			"registered":      registered,
			"registry_agents": registryAgents,
			"notified":        notifyErr == nil && cfg.Lab.APIURL != "",
		})
	}

	printer.KeyValue("House", fmt.Sprintf("%s (%s)", cfg.House.Name, cfg.House.ID))
	printer.KeyValue("Lab API", orNA(cfg.Lab.APIURL))
	printer.KeyValue("Registry", registryPath)
	printer.Println()
	switch {
	case result.Agents == 0:
		printer.Println("No local agents found to sync")
	case result.Created:
		printer.Done("Created new house entry: %s", cfg.House.ID)
		printer.Done("Synced %d agent(s) to registry", result.Agents)
	default:
		printer.Done("Synced %d agent(s) to registry", result.Agents)
	}
	if registered {
		printer.Println(fmt.Sprintf("Found house entry with %d agent(s)", registryAgents))
	} else {
		printer.Println("House not yet registered in central lab")
	}
	if notifyErr != nil {
		if errors.Is(notifyErr, lab.ErrUnavailable) {
			printer.Warn("Lab API not reachable (this is OK if not running): %v", notifyErr)
		} else {
			printer.Warn("%v", notifyErr)
		}
	} else if cfg.Lab.APIURL != "" {
		printer.Done("Notified lab API: %s", labSyncAction)
	}
	return nil
}

func runLabRegister(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	cfg, err := lab.LoadConfig(ws.cfg.LabConfigPath())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	registryPath := cfg.RegistryPath(ws.cfg.Root)
	added, err := lab.Register(cfg, registryPath, time.Now())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"house": cfg.House.ID, "registry": registryPath, "added": added})
	}
	if !added {
		printer.Done("House already registered: %s", cfg.House.ID)
		return nil
	}
	printer.Done("House registered: %s", cfg.House.ID)
	printer.KeyValue("Name", cfg.House.Name)
	printer.KeyValue("Type", cfg.House.Type)
	printer.KeyValue("Registry", registryPath)
	printer.Println()
	printer.Println("Next: run 'taskboard lab sync' to publish agent profiles.")
	return nil
}
