package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sumitRND/PresenceBackend/internal/domain/attendance"
	"github.com/sumitRND/PresenceBackend/internal/domain/auth"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/pkg/jwt"
)

const recentAttendanceLimit = 7

type service struct {
	verifier       auth.ADVerifier
	directory      staff.Directory
	attendanceRepo attendance.Repository
	jwtService     jwt.Service
	hrUsername     string
	hrPasswordHash string
	logger         *slog.Logger
}

func NewService(
	verifier auth.ADVerifier,
	directory staff.Directory,
	attendanceRepo attendance.Repository,
	jwtService jwt.Service,
	hrUsername string,
	hrPasswordHash string,
	logger *slog.Logger,
) auth.Service {
	return &service{
		verifier:       verifier,
		directory:      directory,
		attendanceRepo: attendanceRepo,
		jwtService:     jwtService,
		hrUsername:     hrUsername,
		hrPasswordHash: hrPasswordHash,
		logger:         logger,
	}
}

// Login implements auth.Service.
func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	ok, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("ad verification: %w", err)
	}
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	member, err := s.directory.LookupByUsername(ctx, req.Username)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to resolve staff member: %w", err)
	}

	empClass := ""
	if member.EmpClass != nil {
		empClass = *member.EmpClass
	}

	token, _, err := s.jwtService.GenerateToken(jwt.TokenClaims{
		EmployeeNumber: member.EmployeeNumber,
		Username:       member.Username,
		EmpClass:       empClass,
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.logger.Info("staff login", "username", member.Username)

	return auth.LoginResponse{Token: token, User: *member}, nil
}

// HRLogin implements auth.Service.
func (s *service) HRLogin(ctx context.Context, req auth.LoginRequest) (auth.HRLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.HRLoginResponse{}, err
	}

	if req.Username != s.hrUsername {
		return auth.HRLoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.hrPasswordHash), []byte(req.Password)); err != nil {
		return auth.HRLoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(jwt.TokenClaims{
		EmployeeNumber: s.hrUsername,
		Username:       s.hrUsername,
		EmpClass:       "HR",
	})
	if err != nil {
		return auth.HRLoginResponse{}, err
	}

	s.logger.Info("hr login", "username", s.hrUsername)

	return auth.HRLoginResponse{Token: token, Username: s.hrUsername}, nil
}

// Profile implements auth.Service.
func (s *service) Profile(ctx context.Context, username string) (auth.ProfileResponse, error) {
	member, err := s.directory.LookupByUsername(ctx, username)
	if err != nil {
		return auth.ProfileResponse{}, fmt.Errorf("failed to resolve staff member: %w", err)
	}

	records, err := s.attendanceRepo.ListRecent(ctx, member.EmployeeNumber, recentAttendanceLimit)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	recent := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		recent = append(recent, record.ToResponse())
	}

	return auth.ProfileResponse{User: *member, RecentAttendance: recent}, nil
}
