package metrics

import "github.com/pipewatch/pipewatch/internal/entity"

// rule maps one metric threshold to one recommendation. Rules are
// independent: several may fire for the same metrics object, including both
// build-time rules at once (layered advice).
type rule struct {
	applies func(PerformanceMetrics) bool
	rec     entity.Recommendation
}

var rules = []rule{
	{
		applies: func(m PerformanceMetrics) bool { return m.AverageBuildTime > 600 },
		rec: entity.Recommendation{
			Title:       "Optimize Build Time",
			Description: "Average build time exceeds 10 minutes. Introduce build caching, parallelize independent compilation units, and prune unused dependencies.",
			Priority:    entity.PriorityHigh,
			Impact:      "Faster feedback on every commit",
			Effort:      "medium",
			Category:    "build",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.AverageTestTime > 300 },
		rec: entity.Recommendation{
			Title:       "Optimize Test Execution",
			Description: "Average test time exceeds 5 minutes. Split the suite, run shards in parallel, and move slow integration tests to a separate stage.",
			Priority:    entity.PriorityHigh,
			Impact:      "Shorter pipelines without losing coverage",
			Effort:      "medium",
			Category:    "test",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.AverageDeployTime > 180 },
		rec: entity.Recommendation{
			Title:       "Optimize Deployment Process",
			Description: "Average deploy time exceeds 3 minutes. Pre-bake images and use rolling or blue-green deployments to cut switchover time.",
			Priority:    entity.PriorityMedium,
			Impact:      "Quicker, safer releases",
			Effort:      "medium",
			Category:    "deploy",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.SuccessRate < 80 },
		rec: entity.Recommendation{
			Title:       "Improve Pipeline Stability",
			Description: "Success rate is below 80%. Identify flaky tests and failing stages; quarantine flakes and fix the top recurring failures first.",
			Priority:    entity.PriorityCritical,
			Impact:      "Restores trust in pipeline results",
			Effort:      "high",
			Category:    "stability",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.LeadTimeForChanges > 24 },
		rec: entity.Recommendation{
			Title:       "Reduce Lead Time",
			Description: "Lead time for changes exceeds a day. Reduce batch size, automate manual approval steps, and deploy from trunk more often.",
			Priority:    entity.PriorityHigh,
			Impact:      "Changes reach production faster",
			Effort:      "high",
			Category:    "delivery",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.DeploymentFrequency < 1 },
		rec: entity.Recommendation{
			Title:       "Increase Deployment Frequency",
			Description: "Fewer than one deployment per day. Smaller, more frequent releases lower the risk carried by each deploy.",
			Priority:    entity.PriorityMedium,
			Impact:      "Lower risk per release",
			Effort:      "medium",
			Category:    "delivery",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.ChangeFailureRate > 15 },
		rec: entity.Recommendation{
			Title:       "Reduce Change Failure Rate",
			Description: "More than 15% of deployments fail. Strengthen pre-deploy verification and add automated rollback on failed health checks.",
			Priority:    entity.PriorityHigh,
			Impact:      "Fewer production incidents",
			Effort:      "high",
			Category:    "stability",
		},
	},
	{
		applies: func(m PerformanceMetrics) bool { return m.AverageBuildTime > 300 },
		rec: entity.Recommendation{
			Title:       "Implement Advanced Caching",
			Description: "Builds exceed 5 minutes. Layered dependency and artifact caching between runs typically removes repeated work.",
			Priority:    entity.PriorityMedium,
			Impact:      "Removes repeated work from every build",
			Effort:      "low",
			Category:    "build",
		},
	},
}

// GenerateRecommendations evaluates every rule in declaration order and
// returns the recommendations that fired. Callers wanting a priority-sorted
// view sort the result themselves.
func GenerateRecommendations(m PerformanceMetrics) []entity.Recommendation {
	var recs []entity.Recommendation
	for _, r := range rules {
		if r.applies(m) {
			recs = append(recs, r.rec)
		}
	}
	return recs
}
