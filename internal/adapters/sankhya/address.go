package sankhya

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/domain/address"
	"vtex-sankhya-sync/internal/domain/model"
)

const svcLoadRecords = "CRUDServiceProvider.loadRecords"

// LookupStreetCode resolves a free-text street into the ERP address
// code. Matching is by normalized street name, disambiguated by the
// stored street-type abbreviation against the alias set of the
// extracted prefix. Not-found is ("", nil), never an error.
func (c *Client) LookupStreetCode(ctx context.Context, street string) (string, error) {
	prefix, name := address.SplitStreet(street, c.aliases)
	if name == "" {
		return "", nil
	}

	req := dto.NewLoadRequest("Endereco", fmt.Sprintf("NOMEEND = '%s'", name), "CODEND, NOMEEND, TIPO")
	records, err := c.loadRecords(ctx, req)
	if err != nil {
		return "", err
	}

	for _, rec := range records {
		if c.aliases.MatchesType(rec.F(2), prefix) {
			c.log.Debug("street resolved",
				zap.String("street", street),
				zap.String("code", rec.F(0)),
			)
			return rec.F(0), nil
		}
	}
	c.log.Warn("no street matched prefix abbreviations",
		zap.String("street", street),
		zap.String("prefix", prefix),
	)
	return "", nil
}

// LookupNeighborhoodCode resolves a neighborhood name to its ERP code
// by exact match.
func (c *Client) LookupNeighborhoodCode(ctx context.Context, neighborhood string) (string, error) {
	name := address.Normalize(neighborhood)
	if name == "" {
		return "", nil
	}
	req := dto.NewLoadRequest("Bairro", fmt.Sprintf("NOMEBAI LIKE '%s'", name), "CODBAI, NOMEBAI")
	return c.firstCode(ctx, req)
}

// LookupCityCode resolves a city name to its ERP code by exact match.
func (c *Client) LookupCityCode(ctx context.Context, city string) (string, error) {
	name := address.Normalize(city)
	if name == "" {
		return "", nil
	}
	req := dto.NewLoadRequest("Cidade", fmt.Sprintf("NOMECID LIKE '%s'", name), "CODCID, NOMECID")
	return c.firstCode(ctx, req)
}

// ResolveAddressCodes runs the three lookups for one partner. Missing
// codes come back empty; the caller decides which of them are fatal.
func (c *Client) ResolveAddressCodes(ctx context.Context, p model.Partner) (model.PartnerCodes, error) {
	var codes model.PartnerCodes
	var err error

	if codes.Street, err = c.LookupStreetCode(ctx, p.Street); err != nil {
		return model.PartnerCodes{}, err
	}
	if codes.Neighborhood, err = c.LookupNeighborhoodCode(ctx, p.Neighborhood); err != nil {
		return model.PartnerCodes{}, err
	}
	if codes.City, err = c.LookupCityCode(ctx, p.City); err != nil {
		return model.PartnerCodes{}, err
	}
	return codes, nil
}

func (c *Client) firstCode(ctx context.Context, req dto.LoadRequest) (string, error) {
	records, err := c.loadRecords(ctx, req)
	if err != nil {
		return "", err
	}
	for _, rec := range records {
		if code := rec.F(0); code != "" {
			return code, nil
		}
	}
	return "", nil
}

func (c *Client) loadRecords(ctx context.Context, req dto.LoadRequest) ([]dto.Record, error) {
	resp, err := c.Execute(ctx, svcLoadRecords, req)
	if err != nil {
		return nil, err
	}
	if len(resp.ResponseBody) == 0 {
		return nil, &ResponseFormatError{Body: "loadRecords response without responseBody"}
	}
	var body dto.LoadResponse
	if err := json.Unmarshal(resp.ResponseBody, &body); err != nil {
		return nil, &ResponseFormatError{Body: string(resp.ResponseBody)}
	}
	return body.Entities.Entity, nil
}
