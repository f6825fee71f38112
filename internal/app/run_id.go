package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// GenerateRunID 生成本次运行ID，用于关联日志
// 优先使用环境变量OMNI_RUN_ID，否则生成UUID
func GenerateRunID() string {
	if runID := os.Getenv("OMNI_RUN_ID"); runID != "" {
		return runID
	}

	// 生成格式：omnicure-{hostname}-{uuid}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	shortUUID := uuid.New().String()[:8]
	return fmt.Sprintf("omnicure-%s-%s", hostname, shortUUID)
}
