// health.go — readiness checker бекенда для /health/ready.
package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ReadinessChecker — проверка доступности бекенда через его health endpoint.
type ReadinessChecker struct {
	client     *Client
	healthPath string
}

// NewReadinessChecker создаёт checker доступности бекенда.
// healthPath — probe path бекенда (например, /health).
func (c *Client) NewReadinessChecker(healthPath string) *ReadinessChecker {
	return &ReadinessChecker{client: c, healthPath: healthPath}
}

// CheckReady проверяет доступность health endpoint бекенда.
func (rc *ReadinessChecker) CheckReady() (status, message string) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet,
		rc.client.baseURL+rc.healthPath, http.NoBody)
	if err != nil {
		return "fail", "ошибка создания запроса: " + err.Error()
	}

	resp, err := rc.client.httpClient.Do(req)
	if err != nil {
		return "fail", fmt.Sprintf("бекенд недоступен: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "degraded", fmt.Sprintf("бекенд вернул статус %d", resp.StatusCode)
	}
	return "ok", "бекенд доступен"
}
