package usecase

import (
	"github.com/makrochain/loan-service/internal/application/dto"
	"github.com/makrochain/loan-service/internal/domain/model"
)

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                   loan.ID(),
		FarmerID:             loan.FarmerID(),
		Principal:            loan.Principal(),
		InterestRate:         loan.InterestRate(),
		TermMonths:           loan.TermMonths(),
		RepaymentFrequency:   string(loan.RepaymentFrequency()),
		LoanType:             string(loan.LoanType()),
		Currency:             loan.Currency(),
		IssuedDate:           loan.IssuedDate(),
		DueDate:              loan.DueDate(),
		Status:               loan.Status().String(),
		ApprovedBy:           loan.ApprovedBy(),
		ApprovedDate:         loan.ApprovedAt(),
		DisbursedDate:        loan.DisbursedAt(),
		RejectionReason:      loan.RejectionReason(),
		LastPaymentDate:      loan.LastPaymentAt(),
		TotalRepaymentAmount: loan.TotalRepaymentAmount(),
		AmountPaid:           loan.AmountPaid(),
		RemainingBalance:     loan.RemainingBalance(),
		CreatedAt:            loan.CreatedAt(),
		UpdatedAt:            loan.UpdatedAt(),
	}
}

func toRepaymentResponses(entries []model.Repayment) []dto.RepaymentResponse {
	if len(entries) == 0 {
		return nil
	}
	out := make([]dto.RepaymentResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.RepaymentResponse{
			ID:          e.ID(),
			LoanID:      e.LoanID(),
			Amount:      e.Amount(),
			PaymentDate: e.PaymentDate(),
			Notes:       e.Notes(),
			Sequence:    e.Sequence(),
		}
	}
	return out
}

func toHarvestResponse(h model.Harvest) dto.HarvestResponse {
	return dto.HarvestResponse{
		ID:          h.ID(),
		FarmerID:    h.FarmerID(),
		Crop:        h.Crop(),
		QuantityKg:  h.QuantityKg(),
		UnitPrice:   h.UnitPrice(),
		SalePrice:   h.SalePrice(),
		Currency:    h.Currency(),
		HarvestDate: h.HarvestDate(),
		Status:      h.Status().String(),
		BuyerID:     h.BuyerID(),
		CreatedAt:   h.CreatedAt(),
		UpdatedAt:   h.UpdatedAt(),
	}
}

func toTokenResponse(t model.Token) dto.TokenResponse {
	return dto.TokenResponse{
		ID:             t.ID(),
		HarvestID:      t.HarvestID(),
		BlockchainHash: t.BlockchainHash(),
		Status:         t.Status().String(),
		MintedAt:       t.MintedAt(),
		RedeemedAt:     t.RedeemedAt(),
	}
}
