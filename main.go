package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/username/caudal/backend/src/config"
	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
	"github.com/username/caudal/backend/src/services"
	"github.com/username/caudal/backend/src/storage"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Caudal analyzer starting...")

	var (
		bankPath      = flag.String("bank", "", "bank statement CSV (required)")
		salesPath     = flag.String("sales", "", "issued invoices CSV (optional)")
		purchasesPath = flag.String("purchases", "", "received invoices CSV (optional)")
		balance       = flag.Float64("balance", 0, "current cash balance")
		horizon       = flag.Int("horizon", config.Cfg.HorizonMonths, "projection horizon in months")
		granularity   = flag.String("granularity", config.Cfg.Granularity, "daily, weekly or monthly")
		threshold     = flag.Float64("safety", config.Cfg.SafetyThreshold, "minimum safe balance")
		fixedCosts    = flag.Float64("fixed-costs", config.Cfg.FixedCostsMonthly, "monthly fixed costs")
		conservative  = flag.Bool("conservative", config.Cfg.ConservativeMode, "delay expected collections by 15 days")
		creditTotal   = flag.Float64("credit-total", config.Cfg.CreditLineTotal, "credit line total")
		creditUsed    = flag.Float64("credit-used", config.Cfg.CreditLineUsed, "credit line already drawn")
		creditRate    = flag.Float64("credit-rate", config.Cfg.CreditInterestRate, "credit line annual interest rate, percent")
		userID        = flag.String("user", "local", "owner of the stored snapshot")
		full          = flag.Bool("full", false, "print the full snapshot instead of the executive summary")
	)
	flag.Parse()

	if *bankPath == "" {
		fmt.Fprintln(os.Stderr, "usage: caudal -bank statement.csv [-sales invoices.csv] [-purchases invoices.csv] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	gran, err := models.ParseGranularity(*granularity)
	if err != nil {
		logger.L.Error("Invalid granularity", "value", *granularity, "error", err)
		os.Exit(2)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	store, err := storage.NewSQLiteStore(config.Cfg.DatabasePath)
	if err != nil {
		logger.L.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	input := services.AnalysisInput{
		StartingBalance:   *balance,
		HorizonMonths:     *horizon,
		Granularity:       gran,
		SafetyThreshold:   *threshold,
		FixedCostsMonthly: *fixedCosts,
		ConservativeMode:  *conservative,
		CreditLine: models.CreditLine{
			Total:              *creditTotal,
			Used:               *creditUsed,
			AnnualInterestRate: *creditRate,
		},
		UserID: *userID,
	}

	bankFile, err := os.Open(*bankPath)
	if err != nil {
		logger.L.Error("Cannot open bank statement", "path", *bankPath, "error", err)
		os.Exit(1)
	}
	defer bankFile.Close()
	input.BankFile = bankFile

	if *salesPath != "" {
		f, err := os.Open(*salesPath)
		if err != nil {
			logger.L.Error("Cannot open sales invoices", "path", *salesPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		input.SalesFile = f
	}
	if *purchasesPath != "" {
		f, err := os.Open(*purchasesPath)
		if err != nil {
			logger.L.Error("Cannot open purchase invoices", "path", *purchasesPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		input.PurchaseFile = f
	}

	service := services.NewAnalysisService(store)
	snap, err := service.ProcessAnalysis(input)
	if err != nil {
		logger.L.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if *full {
		err = enc.Encode(snap)
	} else {
		err = enc.Encode(struct {
			SnapshotID string                  `json:"snapshot_id"`
			Summary    models.ExecutiveSummary `json:"executive_summary"`
			Alerts     []models.Alert          `json:"alerts"`
			Plan       models.ActionPlan       `json:"action_plan"`
		}{snap.SnapshotID, snap.Summary, snap.Alerts, snap.Plan})
	}
	if err != nil {
		logger.L.Error("Failed to write output", "error", err)
		os.Exit(1)
	}
}
