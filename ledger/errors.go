package ledger

// Error is a ledger-level failure with a stable machine-readable code.
// Integrators switch on Code; the message is for humans only.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUnauthorized             = &Error{"UNAUTHORIZED", "unauthorized access"}
	ErrRoomAlreadyExists        = &Error{"ROOM_ALREADY_EXISTS", "room already exists"}
	ErrRoomNotFound             = &Error{"ROOM_NOT_FOUND", "room not found"}
	ErrRoomNotReady             = &Error{"ROOM_NOT_READY", "room not ready for players"}
	ErrInvalidRoomStatus        = &Error{"INVALID_ROOM_STATUS", "invalid room status"}
	ErrRoomAlreadyEnded         = &Error{"ROOM_ALREADY_ENDED", "room already ended"}
	ErrRoomExpired              = &Error{"ROOM_EXPIRED", "room has expired"}
	ErrPlayerAlreadyJoined      = &Error{"PLAYER_ALREADY_JOINED", "player already joined"}
	ErrHostCannotBeWinner       = &Error{"HOST_CANNOT_BE_WINNER", "host cannot be a winner"}
	ErrInvalidWinners           = &Error{"INVALID_WINNERS", "invalid winners list"}
	ErrTokenNotApproved         = &Error{"TOKEN_NOT_APPROVED", "token not approved"}
	ErrTokenAlreadyApproved     = &Error{"TOKEN_ALREADY_APPROVED", "token is already in the approved registry"}
	ErrTokenRegistryFull        = &Error{"TOKEN_REGISTRY_FULL", "token registry is full (max 50 tokens)"}
	ErrInvalidEntryFee          = &Error{"INVALID_ENTRY_FEE", "invalid entry fee"}
	ErrHostFeeTooHigh           = &Error{"HOST_FEE_TOO_HIGH", "host fee exceeds maximum"}
	ErrPrizePoolTooHigh         = &Error{"PRIZE_POOL_TOO_HIGH", "prize pool exceeds maximum"}
	ErrCharityBelowMinimum      = &Error{"CHARITY_BELOW_MINIMUM", "charity allocation below minimum"}
	ErrInvalidPrizeDistribution = &Error{"INVALID_PRIZE_DISTRIBUTION", "prize distribution must sum to 100"}
	ErrInsufficientBalance      = &Error{"INSUFFICIENT_BALANCE", "insufficient balance"}
	ErrEmergencyPause           = &Error{"EMERGENCY_PAUSE", "contract is paused"}
	ErrArithmeticOverflow       = &Error{"ARITHMETIC_OVERFLOW", "arithmetic overflow"}
	ErrArithmeticUnderflow      = &Error{"ARITHMETIC_UNDERFLOW", "arithmetic underflow"}
	ErrInvalidRoomID            = &Error{"INVALID_ROOM_ID", "invalid room id (max 32 characters)"}
	ErrInvalidMemo              = &Error{"INVALID_MEMO", "invalid memo (max 28 characters)"}
	ErrMaxPlayersReached        = &Error{"MAX_PLAYERS_REACHED", "room has reached maximum players"}
	ErrInvalidMaxPlayers        = &Error{"INVALID_MAX_PLAYERS", "invalid max_players (must be between 1 and 1000)"}
	ErrInvalidTokenMint         = &Error{"INVALID_TOKEN_MINT", "token account mint does not match room token mint"}
	ErrInvalidTokenOwner        = &Error{"INVALID_TOKEN_OWNER", "token account owner does not match expected wallet"}
	ErrWinnersAlreadyDeclared   = &Error{"WINNERS_ALREADY_DECLARED", "winners have already been declared for this room"}
	ErrInvalidPrizeAmount       = &Error{"INVALID_PRIZE_AMOUNT", "invalid prize amount (must be > 0)"}
	ErrPrizeAlreadyDeposited    = &Error{"PRIZE_ALREADY_DEPOSITED", "prize already deposited"}
	ErrPrizeNotDeposited        = &Error{"PRIZE_NOT_DEPOSITED", "prize not deposited yet"}
	ErrPrizesNotFullyFunded     = &Error{"PRIZES_NOT_FULLY_FUNDED", "all prizes must be deposited before players can join"}
	ErrAccountNotFound          = &Error{"ACCOUNT_NOT_FOUND", "token account not found"}
	ErrAlreadyInitialized       = &Error{"ALREADY_INITIALIZED", "config already initialized"}
	ErrNotInitialized           = &Error{"NOT_INITIALIZED", "config not initialized"}
)
