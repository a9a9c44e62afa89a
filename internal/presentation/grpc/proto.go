package grpc

// proto.go defines the gRPC server interfaces derived from
// makrochain/loan/v1/loan.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/makrochain/api/gen/go/makrochain/loan/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/makrochain/loan-service/internal/application/dto"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// CreateLoanRequest carries a new loan application. Money and rate fields are
// decimal strings; dates are RFC 3339.
type CreateLoanRequest struct {
	FarmerId           string `json:"farmer_id"`
	Principal          string `json:"principal"`
	InterestRate       string `json:"interest_rate"`
	DurationMonths     int    `json:"duration_months"`
	RepaymentFrequency string `json:"repayment_frequency"`
	LoanType           string `json:"loan_type"`
	Currency           string `json:"currency"`
	IssuedDate         string `json:"issued_date"`
	DueDate            string `json:"due_date"`
}

type GetLoanRequest struct {
	LoanId        string `json:"loan_id"`
	IncludeLedger bool   `json:"include_ledger"`
}

type SearchLoansRequest struct {
	FarmerId string `json:"farmer_id,omitempty"`
	Status   string `json:"status,omitempty"`
	LoanType string `json:"loan_type,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

type UpdateLoanStatusRequest struct {
	LoanId          string `json:"loan_id"`
	Status          string `json:"status"`
	ApproverId      string `json:"approver_id,omitempty"`
	ApprovedDate    string `json:"approved_date,omitempty"`
	DisbursedDate   string `json:"disbursed_date,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	NewDueDate      string `json:"new_due_date,omitempty"`
	NewInterestRate string `json:"new_interest_rate,omitempty"`
}

type RecordPaymentRequest struct {
	LoanId      string `json:"loan_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type RunOverdueSweepRequest struct{}

type LoanReply struct {
	Loan dto.LoanResponse `json:"loan"`
}

type SearchLoansReply struct {
	Loans []dto.LoanResponse `json:"loans"`
}

type RecordPaymentReply struct {
	Payment dto.PaymentResponse `json:"payment"`
}

type RunOverdueSweepReply struct {
	Scanned      int `json:"scanned"`
	Transitioned int `json:"transitioned"`
	Failed       int `json:"failed"`
}

type RegisterHarvestRequest struct {
	FarmerId    string `json:"farmer_id"`
	Crop        string `json:"crop"`
	QuantityKg  string `json:"quantity_kg"`
	UnitPrice   string `json:"unit_price"`
	Currency    string `json:"currency"`
	HarvestDate string `json:"harvest_date"`
}

type ReserveHarvestRequest struct {
	HarvestId string `json:"harvest_id"`
	BuyerId   string `json:"buyer_id"`
}

type ReleaseHarvestRequest struct {
	HarvestId string `json:"harvest_id"`
}

type SellHarvestRequest struct {
	HarvestId string `json:"harvest_id"`
}

type MintTokenRequest struct {
	TokenId        string `json:"token_id"`
	BlockchainHash string `json:"blockchain_hash"`
}

type RedeemTokenRequest struct {
	TokenId string `json:"token_id"`
}

type HarvestReply struct {
	Harvest dto.HarvestResponse `json:"harvest"`
}

type TokenReply struct {
	Token dto.TokenResponse `json:"token"`
}

// ---------------------------------------------------------------------------
// LoanService
// ---------------------------------------------------------------------------

// LoanServiceServer is the server API for LoanService.
// It mirrors the proto-generated interface from makrochain.loan.v1.LoanService.
type LoanServiceServer interface {
	CreateLoan(context.Context, *CreateLoanRequest) (*LoanReply, error)
	GetLoan(context.Context, *GetLoanRequest) (*LoanReply, error)
	SearchLoans(context.Context, *SearchLoansRequest) (*SearchLoansReply, error)
	UpdateLoanStatus(context.Context, *UpdateLoanStatusRequest) (*LoanReply, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentReply, error)
	RunOverdueSweep(context.Context, *RunOverdueSweepRequest) (*RunOverdueSweepReply, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*LoanReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedLoanServiceServer) GetLoan(context.Context, *GetLoanRequest) (*LoanReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanServiceServer) SearchLoans(context.Context, *SearchLoansRequest) (*SearchLoansReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchLoans not implemented")
}
func (UnimplementedLoanServiceServer) UpdateLoanStatus(context.Context, *UpdateLoanStatusRequest) (*LoanReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateLoanStatus not implemented")
}
func (UnimplementedLoanServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedLoanServiceServer) RunOverdueSweep(context.Context, *RunOverdueSweepRequest) (*RunOverdueSweepReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunOverdueSweep not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s *grpclib.Server, srv LoanServiceServer) {
	s.RegisterService(&_LoanService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "makrochain.loan.v1.LoanService",
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateLoan", Handler: _LoanService_CreateLoan_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LoanService_GetLoan_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "SearchLoans", Handler: _LoanService_SearchLoans_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "UpdateLoanStatus", Handler: _LoanService_UpdateLoanStatus_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _LoanService_RecordPayment_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "RunOverdueSweep", Handler: _LoanService_RunOverdueSweep_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_CreateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/CreateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).CreateLoan(ctx, req.(*CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_SearchLoans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SearchLoansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).SearchLoans(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/SearchLoans",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).SearchLoans(ctx, req.(*SearchLoansRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_UpdateLoanStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateLoanStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).UpdateLoanStatus(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/UpdateLoanStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).UpdateLoanStatus(ctx, req.(*UpdateLoanStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanService_RunOverdueSweep_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunOverdueSweepRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanServiceServer).RunOverdueSweep(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.LoanService/RunOverdueSweep",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanServiceServer).RunOverdueSweep(ctx, req.(*RunOverdueSweepRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ---------------------------------------------------------------------------
// MarketplaceService
// ---------------------------------------------------------------------------

// MarketplaceServiceServer is the server API for MarketplaceService.
// It mirrors the proto-generated interface from makrochain.loan.v1.MarketplaceService.
type MarketplaceServiceServer interface {
	RegisterHarvest(context.Context, *RegisterHarvestRequest) (*HarvestReply, error)
	ReserveHarvest(context.Context, *ReserveHarvestRequest) (*HarvestReply, error)
	ReleaseHarvest(context.Context, *ReleaseHarvestRequest) (*HarvestReply, error)
	SellHarvest(context.Context, *SellHarvestRequest) (*HarvestReply, error)
	MintToken(context.Context, *MintTokenRequest) (*TokenReply, error)
	RedeemToken(context.Context, *RedeemTokenRequest) (*TokenReply, error)
	mustEmbedUnimplementedMarketplaceServiceServer()
}

// UnimplementedMarketplaceServiceServer provides forward-compatible default implementations.
type UnimplementedMarketplaceServiceServer struct{}

func (UnimplementedMarketplaceServiceServer) RegisterHarvest(context.Context, *RegisterHarvestRequest) (*HarvestReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterHarvest not implemented")
}
func (UnimplementedMarketplaceServiceServer) ReserveHarvest(context.Context, *ReserveHarvestRequest) (*HarvestReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReserveHarvest not implemented")
}
func (UnimplementedMarketplaceServiceServer) ReleaseHarvest(context.Context, *ReleaseHarvestRequest) (*HarvestReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReleaseHarvest not implemented")
}
func (UnimplementedMarketplaceServiceServer) SellHarvest(context.Context, *SellHarvestRequest) (*HarvestReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SellHarvest not implemented")
}
func (UnimplementedMarketplaceServiceServer) MintToken(context.Context, *MintTokenRequest) (*TokenReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MintToken not implemented")
}
func (UnimplementedMarketplaceServiceServer) RedeemToken(context.Context, *RedeemTokenRequest) (*TokenReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RedeemToken not implemented")
}
func (UnimplementedMarketplaceServiceServer) mustEmbedUnimplementedMarketplaceServiceServer() {}

// RegisterMarketplaceServiceServer registers the MarketplaceServiceServer with the gRPC server.
func RegisterMarketplaceServiceServer(s *grpclib.Server, srv MarketplaceServiceServer) {
	s.RegisterService(&_MarketplaceService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _MarketplaceService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "makrochain.loan.v1.MarketplaceService",
	HandlerType: (*MarketplaceServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterHarvest", Handler: _MarketplaceService_RegisterHarvest_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ReserveHarvest", Handler: _MarketplaceService_ReserveHarvest_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ReleaseHarvest", Handler: _MarketplaceService_ReleaseHarvest_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "SellHarvest", Handler: _MarketplaceService_SellHarvest_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "MintToken", Handler: _MarketplaceService_MintToken_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "RedeemToken", Handler: _MarketplaceService_RedeemToken_Handler},         //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_RegisterHarvest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterHarvestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).RegisterHarvest(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/RegisterHarvest",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).RegisterHarvest(ctx, req.(*RegisterHarvestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_ReserveHarvest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReserveHarvestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).ReserveHarvest(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/ReserveHarvest",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).ReserveHarvest(ctx, req.(*ReserveHarvestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_ReleaseHarvest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReleaseHarvestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).ReleaseHarvest(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/ReleaseHarvest",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).ReleaseHarvest(ctx, req.(*ReleaseHarvestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_SellHarvest_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SellHarvestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).SellHarvest(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/SellHarvest",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).SellHarvest(ctx, req.(*SellHarvestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_MintToken_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(MintTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).MintToken(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/MintToken",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).MintToken(ctx, req.(*MintTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _MarketplaceService_RedeemToken_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RedeemTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MarketplaceServiceServer).RedeemToken(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/makrochain.loan.v1.MarketplaceService/RedeemToken",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MarketplaceServiceServer).RedeemToken(ctx, req.(*RedeemTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}
