// dto.go — сырые структуры ответов бекенда.
// Бекенд использует числовые идентификаторы и строковые перечисления;
// нормализация к доменным моделям выполняется в пакете normalize,
// нетипизированные данные дальше этой границы не проходят.
package backend

// Envelope — стандартный конверт ответа бекенда: {message, data}.
type Envelope[T any] struct {
	// Message — человекочитаемое сообщение бекенда
	Message string `json:"message"`
	// Data — полезная нагрузка
	Data T `json:"data"`
}

// AssetDTO — актив в представлении бекенда.
type AssetDTO struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	TypeID       int64   `json:"typeId"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	AssignedTo   *int64  `json:"assignedTo,omitempty"`
	PurchaseDate string  `json:"purchaseDate"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description,omitempty"`
	CreatedBy    string  `json:"createdBy,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// AssetTypeDTO — тип актива в представлении бекенда.
type AssetTypeDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// DepartmentDTO — подразделение в представлении бекенда.
type DepartmentDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ManagerID     *int64 `json:"managerId,omitempty"`
	IsActive      bool   `json:"isActive"`
	EmployeeCount int    `json:"employeeCount"`
}

// UserDTO — пользователь в представлении бекенда.
// Поле активности у бекенда называется active, а не isActive.
type UserDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	Active       bool   `json:"active"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// AssetHistoryDTO — запись журнала операций в представлении бекенда.
type AssetHistoryDTO struct {
	ID             int64  `json:"id"`
	AssetID        int64  `json:"assetId"`
	ActionType     string `json:"actionType"`
	PerformedBy    string `json:"performedBy"`
	PerformedAt    string `json:"performedAt"`
	Details        string `json:"details,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
}

// NotificationDTO — уведомление в представлении бекенда.
type NotificationDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	AssetID   *int64 `json:"assetId,omitempty"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"isRead"`
	LinkURL   string `json:"linkUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ChatMessageDTO — сообщение чат-бота в представлении бекенда.
type ChatMessageDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Message   string `json:"message"`
	Response  string `json:"response,omitempty"`
	Sender    string `json:"sender,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// --- Полезные нагрузки мутаций ---

// AssetPayload — тело create/update актива.
type AssetPayload struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	TypeID       int64   `json:"typeId"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	AssignedTo   *int64  `json:"assignedTo,omitempty"`
	PurchaseDate string  `json:"purchaseDate"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description,omitempty"`
}

// AssignPayload — тело операции assign.
type AssignPayload struct {
	UserID     int64  `json:"userId"`
	AssignDate string `json:"assignDate,omitempty"`
}

// EvaluatePayload — тело операции evaluate.
type EvaluatePayload struct {
	PerformedBy    int64  `json:"performedBy"`
	Details        string `json:"details,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
	Condition      string `json:"condition"`
}

// AssetTypePayload — тело create/update типа актива.
type AssetTypePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// DepartmentPayload — тело create/update подразделения.
type DepartmentPayload struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ManagerID     *int64 `json:"managerId,omitempty"`
	IsActive      bool   `json:"isActive"`
	EmployeeCount int    `json:"employeeCount"`
}

// UserPayload — тело create/update пользователя.
type UserPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	Active       bool   `json:"active"`
}

// NotificationPayload — тело update уведомления (mark-read).
type NotificationPayload struct {
	UserID  int64  `json:"userId"`
	AssetID *int64 `json:"assetId,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `json:"isRead"`
	LinkURL string `json:"linkUrl,omitempty"`
}

// ChatPayload — тело сообщения чат-боту.
type ChatPayload struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}
