package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reellog/reellog/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config and server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	fmt.Println("\nreellog Doctor")
	fmt.Println("==============")

	var results []checkResult

	// 1. Config file.
	cfgPath, cfg, cfgErr := doctorLoadConfig()
	if cfgErr != nil {
		results = append(results, checkResult{
			Name: "Config file", Passed: false,
			Detail: cfgPath,
			Hint:   "Run: reellog init",
		})
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	// Resolve URL with the same priority as resolveConfig.
	url := flagURL
	if url == defaultURL {
		if v := os.Getenv("REELLOG_URL"); v != "" {
			url = v
		} else if cfg != nil && cfg.URL != "" {
			url = cfg.URL
		}
	}

	// 2. Server URL.
	results = append(results, checkResult{
		Name: "Server URL", Passed: true, Detail: url,
	})

	// 3. Server reachable.
	ver, healthErr := doctorCheckHealth(url)
	if healthErr != nil {
		results = append(results, checkResult{
			Name: "Server reachable", Passed: false,
			Detail: url,
			Hint:   fmt.Sprintf("Is the reellog server running?\n   Error: %v", healthErr),
		})
	} else {
		detail := url
		if ver != "" {
			detail = fmt.Sprintf("v%s", ver)
		}
		results = append(results, checkResult{
			Name: "Server reachable", Passed: true, Detail: detail,
		})
	}

	// Print results.
	fmt.Println()
	allPassed := true
	for _, r := range results {
		if r.Passed {
			if r.Detail != "" {
				fmt.Printf("✅ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("✅ %s\n", r.Name)
			}
		} else {
			allPassed = false
			if r.Detail != "" {
				fmt.Printf("❌ %s: %s\n", r.Name, r.Detail)
			} else {
				fmt.Printf("❌ %s\n", r.Name)
			}
			if r.Hint != "" {
				fmt.Printf("   Hint: %s\n", r.Hint)
			}
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	return nil
}

func doctorLoadConfig() (string, *configFile, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}

	return cfgPath, &cfg, nil
}

func doctorCheckHealth(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := client.New(url).Health(ctx)
	if err != nil {
		return "", err
	}

	return resp.Version, nil
}
