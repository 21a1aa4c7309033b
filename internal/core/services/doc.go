// Package services contains the core business logic: the ingestion
// router, the retrieval aggregator, and the adaptive-learning services
// (difficulty analysis, content generation, assistant orchestration).
// Services depend only on domain types and ports.
package services
