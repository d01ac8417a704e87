package analytics

// Display labels for the frontend. Unknown values pass through unchanged so a
// new enum value never breaks a report.

var statusLabels = map[string]string{
	"pending":     "待处理",
	"in_progress": "进行中",
	"completed":   "已完成",
	"cancelled":   "已取消",
}

var priorityLabels = map[string]string{
	"high":   "高",
	"medium": "中",
	"low":    "低",
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func PriorityLabel(priority string) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return priority
}
