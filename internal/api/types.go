package api

import (
	"encoding/json"
	"time"
)

// Usertype identifies which side of the marketplace an account belongs to.
type Usertype string

const (
	UsertypeBuyer  Usertype = "buyer"
	UsertypeSeller Usertype = "seller"
	UsertypeAgent  Usertype = "agent"
	UsertypeAdmin  Usertype = "admin"
)

// ConversationStatus mirrors the platform's chat lifecycle values.
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationArchived ConversationStatus = "archived"
	ConversationClosed   ConversationStatus = "closed"
	ConversationPending  ConversationStatus = "pending"
)

// PaymentStatus mirrors the platform's transaction lifecycle values.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Usertype  Usertype  `json:"usertype"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID        int64     `json:"id"`
	SenderID  int64     `json:"sender_id"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Conversation struct {
	ID            int64              `json:"id"`
	Status        ConversationStatus `json:"status"`
	Buyer         User               `json:"buyer"`
	Seller        User               `json:"seller"`
	AssignedAgent *User              `json:"assigned_agent,omitempty"`
	MessageCount  int                `json:"message_count"`
	UnreadCount   int                `json:"unread_count"`
	LastMessageAt time.Time          `json:"last_message_at"`
	LatestMessage *Message           `json:"latest_message,omitempty"`
}

type Order struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

type Payment struct {
	ID            int64         `json:"id"`
	TransactionID string        `json:"transaction_id,omitempty"`
	OrderID       int64         `json:"order_id"`
	Order         *Order        `json:"order,omitempty"`
	Amount        float64       `json:"amount"`
	PlatformFee   float64       `json:"platform_fee"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod string        `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Page is the paginator envelope every list endpoint returns.
// Invariants upheld by the server: CurrentPage <= LastPage and
// len(Data) <= PerPage.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	From        int `json:"from"`
	To          int `json:"to"`
}

type ChatStats struct {
	TotalConversations    int `json:"total_conversations"`
	ActiveConversations   int `json:"active_conversations"`
	ArchivedConversations int `json:"archived_conversations"`
	PendingConversations  int `json:"pending_conversations"`
	UnreadMessages        int `json:"unread_messages"`
}

type PaymentStats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalVolume       float64 `json:"total_amount"`
	TotalFees         float64 `json:"total_platform_fees"`
	Completed         int     `json:"completed_count"`
	Pending           int     `json:"pending_count"`
	Failed            int     `json:"failed_count"`
	Refunded          int     `json:"refunded_count"`
}

type UserStats struct {
	TotalUsers   int `json:"total_users"`
	Buyers       int `json:"total_buyers"`
	Sellers      int `json:"total_sellers"`
	Agents       int `json:"total_agents"`
	NewThisMonth int `json:"new_this_month"`
}

// ImpersonationGrant is the server's answer to an impersonation request.
type ImpersonationGrant struct {
	Token            string `json:"token"`
	ImpersonatorID   int64  `json:"impersonator_id"`
	ImpersonatorName string `json:"impersonator_name"`
}

// envelope wraps statistics and mutation responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
