package sankhya

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/domain/model"
)

const svcSaveDataset = "DatasetSP.save"

// Fixed fiscal classification the ERP requires on every consumer
// partner record.
const (
	fiscalCstIPIIn  = 49
	fiscalCstIPIOut = 99
	fiscalICMSClass = "C"
)

// FindPartnerCode looks a partner up by tax id. Not-found is ("", nil)
// and triggers the insert path upstream; only transport failures are
// errors.
func (c *Client) FindPartnerCode(ctx context.Context, taxID string) (string, error) {
	req := dto.NewLoadRequest("Parceiro", fmt.Sprintf("CGC_CPF = '%s'", taxID), "CODPARC, NOMEPARC")
	records, err := c.loadRecords(ctx, req)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		c.log.Info("partner not found", zap.String("tax_id", taxID))
		return "", nil
	}
	code := records[0].F(0)
	c.log.Info("partner found", zap.String("tax_id", taxID), zap.String("code", code))
	return code, nil
}

// UpdatePartner rewrites the partner's basic and address data. The
// returned bool is the business outcome; a rejected save is not an
// error so the caller can log it and keep going.
func (c *Client) UpdatePartner(ctx context.Context, code string, p model.Partner, codes model.PartnerCodes) (bool, error) {
	if code == "" {
		return false, fmt.Errorf("partner update requires a partner code")
	}

	req := dto.SaveRequest{
		EntityName: "Parceiro",
		Fields: []string{
			"CODPARC", "NOMEPARC", "RAZAOSOCIAL", "TELEFONE", "TIPPESSOA", "CLIENTE",
			"CEP", "COMPLEMENTO", "NUMEND", "CODEND", "CODBAI", "CODCID",
			"CSTIPIENT", "CSTIPISAI", "CLASSIFICMS",
		},
		Records: []dto.SaveRecord{
			{
				PK: map[string]string{"CODPARC": code},
				Values: map[string]any{
					"1":  p.DisplayName,
					"2":  p.DisplayName,
					"3":  cleanPhone(p.Phone),
					"4":  "F",
					"5":  "S",
					"6":  cleanPostalCode(p.PostalCode),
					"7":  p.Complement,
					"8":  p.HouseNumber,
					"9":  codes.Street,
					"10": codes.Neighborhood,
					"11": codes.City,
					"12": fiscalCstIPIIn,
					"13": fiscalCstIPIOut,
					"14": fiscalICMSClass,
				},
			},
		},
	}
	return c.save(ctx, "partner update", req)
}

// UpdatePartnerDelivery rewrites the delivery-address complement
// record keyed by the same partner code.
func (c *Client) UpdatePartnerDelivery(ctx context.Context, code string, p model.Partner, codes model.PartnerCodes) (bool, error) {
	if code == "" {
		return false, fmt.Errorf("delivery update requires a partner code")
	}

	req := dto.SaveRequest{
		EntityName: "ComplementoParc",
		Fields: []string{
			"CODPARC", "CODENDENTREGA", "NUMENTREGA", "COMPLENTREGA",
			"CODBAIENTREGA", "CODCIDENTREGA", "CEPENTREGA", "LOGISTICA",
		},
		Records: []dto.SaveRecord{
			{
				PK: map[string]string{"CODPARC": code},
				Values: map[string]any{
					"1": codes.Street,
					"2": p.HouseNumber,
					"3": p.Complement,
					"4": codes.Neighborhood,
					"5": codes.City,
					"6": cleanPostalCode(p.PostalCode),
					"7": "S",
				},
			},
		},
	}
	return c.save(ctx, "delivery update", req)
}

// InsertPartner creates the partner record. The tax id rides in the
// field list; the ERP assigns the code, which the caller re-fetches.
func (c *Client) InsertPartner(ctx context.Context, p model.Partner, codes model.PartnerCodes) (bool, error) {
	req := dto.SaveRequest{
		EntityName: "Parceiro",
		Fields: []string{
			"CODPARC", "NOMEPARC", "RAZAOSOCIAL", "TELEFONE", "TIPPESSOA", "CLIENTE",
			"CEP", "COMPLEMENTO", "NUMEND", "CODEND", "CODBAI", "CODCID",
			"CSTIPIENT", "CSTIPISAI", "CLASSIFICMS", "CGC_CPF",
		},
		Records: []dto.SaveRecord{
			{
				Values: map[string]any{
					"1":  p.DisplayName,
					"2":  p.DisplayName,
					"3":  cleanPhone(p.Phone),
					"4":  "F",
					"5":  "S",
					"6":  cleanPostalCode(p.PostalCode),
					"7":  p.Complement,
					"8":  p.HouseNumber,
					"9":  codes.Street,
					"10": codes.Neighborhood,
					"11": codes.City,
					"12": fiscalCstIPIIn,
					"13": fiscalCstIPIOut,
					"14": fiscalICMSClass,
					"15": p.TaxID,
				},
			},
		},
	}
	return c.save(ctx, "partner insert", req)
}

func (c *Client) save(ctx context.Context, op string, req dto.SaveRequest) (bool, error) {
	resp, err := c.Execute(ctx, svcSaveDataset, req)
	if err != nil {
		return false, err
	}
	if !resp.Accepted() {
		c.log.Warn("sankhya rejected save",
			zap.String("op", op),
			zap.String("status", resp.Status),
			zap.String("message", resp.StatusMessage),
		)
		return false, nil
	}
	c.log.Info("sankhya save accepted", zap.String("op", op))
	return true, nil
}

// cleanPhone strips the +55 country prefix VTEX includes.
func cleanPhone(phone string) string {
	return strings.TrimPrefix(phone, "+55")
}

// cleanPostalCode drops the CEP hyphen: "66077-630" -> "66077630".
func cleanPostalCode(cep string) string {
	return strings.ReplaceAll(cep, "-", "")
}
