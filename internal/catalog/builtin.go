package catalog

import "github.com/iwvelando/roi-forecast/internal/roi"

var categoryColors = [3]string{"#3B82F6", "#10B981", "#8B5CF6"}

func categories(labels ...string) []roi.ImpactCategory {
	out := make([]roi.ImpactCategory, len(labels))
	for i, label := range labels {
		out[i] = roi.ImpactCategory{Label: label, Color: categoryColors[i%len(categoryColors)]}
	}
	return out
}

func builtins() []Entry {
	return []Entry{
		{
			Key: "order-management",
			Profile: roi.UseCaseProfile{
				Name:                  "Order Management & Validation",
				Description:           "Improve order capture, validation, and exception handling for complex product configurations",
				BaseVolume:            50000,
				BaseValue:             2500,
				ProcessCost:           85,
				RevenueFactor:         0.65,
				SavingsFactor:         0.35,
				DefaultRevenueLift:    0.18,
				DefaultCostSavings:    0.25,
				DefaultInvestment:     500000,
				DefaultMaintenancePct: 0.20,
				ImpactCategories:      categories("Process Automation", "Error Reduction", "Cycle Time Improvement"),
			},
		},
		{
			Key: "invoice-processing",
			Profile: roi.UseCaseProfile{
				Name:                  "Invoice Processing & Approval",
				Description:           "Automate invoice validation, exception handling, and payment optimization",
				BaseVolume:            120000,
				BaseValue:             3500,
				ProcessCost:           45,
				RevenueFactor:         0.45,
				SavingsFactor:         0.55,
				DefaultRevenueLift:    0.22,
				DefaultCostSavings:    0.30,
				DefaultInvestment:     450000,
				DefaultMaintenancePct: 0.18,
				ImpactCategories:      categories("Straight-Through Processing", "Early Payment Capture", "Compliance"),
			},
		},
		{
			Key: "claims-processing",
			Profile: roi.UseCaseProfile{
				Name:                  "Insurance Claims Adjudication",
				Description:           "Accelerate claims processing with automated validation and fraud detection",
				BaseVolume:            85000,
				BaseValue:             4200,
				ProcessCost:           120,
				RevenueFactor:         0.50,
				SavingsFactor:         0.50,
				DefaultRevenueLift:    0.28,
				DefaultCostSavings:    0.35,
				DefaultInvestment:     650000,
				DefaultMaintenancePct: 0.22,
				ImpactCategories:      categories("Automation Rate", "Fraud Prevention", "Cycle Time"),
			},
		},
		{
			Key: "customer-service",
			Profile: roi.UseCaseProfile{
				Name:                  "Customer Service Automation",
				Description:           "Deflect routine inquiries and improve agent productivity with AI assistance",
				BaseVolume:            250000,
				BaseValue:             85,
				ProcessCost:           12,
				RevenueFactor:         0.40,
				SavingsFactor:         0.60,
				DefaultRevenueLift:    0.15,
				DefaultCostSavings:    0.45,
				DefaultInvestment:     380000,
				DefaultMaintenancePct: 0.25,
				ImpactCategories:      categories("Deflection & Automation", "Customer Retention", "Agent Productivity"),
			},
		},
	}
}
