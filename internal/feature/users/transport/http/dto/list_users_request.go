package dto

// ListUsersRequest はユーザー一覧のクエリパラメータです。
// page と limit はどちらも省略可能で、省略時はページングなしを意味します。
type ListUsersRequest struct {
	Page  *int `json:"page" validate:"omitnil,gt=0"`
	Limit *int `json:"limit" validate:"omitnil,gte=5,lte=20"`
}
