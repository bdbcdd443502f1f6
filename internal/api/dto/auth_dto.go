package dto

// RegisterInput 注册参数，文件已由上传中间件暂存到本地
type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// LoginRequest 登录请求，用户名与邮箱二选一
type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=64"`
	Email    string `json:"email" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"omitempty,max=255"`
}

// RefreshTokenRequest Cookie 中没有刷新令牌时从请求体读取
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"omitempty,max=255"`
	NewPassword string `json:"newPassword" binding:"omitempty,max=255"`
}

// TokenPair 访问令牌与刷新令牌
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginData 登录成功返回
type LoginData struct {
	User *UserInfo `json:"user"`
	TokenPair
}
