package postgres

import (
	"context"
	"database/sql"

	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/clinicalforecast/edi-loader/edi/models"
)

const sqlFlavor = sqlbuilder.PostgreSQL

// Repository persists decoded EDI records. All writes are idempotent
// upserts: eligibility is keyed by member id + inquiry timestamp, prior
// auths by authorization id, claim headers by claim id, and claim lines by
// claim id + line number.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateEDIFile(ctx context.Context, file models.EDIFile) (uint, error) {
	query, args := sqlbuilder.Buildf(`INSERT INTO edi_files
		(name, transaction_set, timestamp, import_status) VALUES
		(%s, %s, %s, %s) RETURNING id`,
		file.Name, file.TransactionSet, file.Timestamp, file.ImportStatus).
		BuildWithFlavor(sqlFlavor)

	var id uint
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repository) UpdateEDIFileImportStatus(ctx context.Context, fileID uint, status string) error {
	ub := sqlFlavor.NewUpdateBuilder().Update("edi_files")
	ub.Set(ub.Assign("import_status", status))
	ub.Where(ub.Equal("id", fileID))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("EDI file %d not updated, no row found", fileID)
	}

	return nil
}

func (r *Repository) GetEDIFileExistsByName(ctx context.Context, name string) (bool, error) {
	sb := sqlFlavor.NewSelectBuilder().Select("COUNT(1)").From("edi_files")
	sb.Where(sb.Equal("name", name))

	var count int
	query, args := sb.Build()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *Repository) UpsertEligibilityInquiry(ctx context.Context, inquiry models.EligibilityInquiry) error {
	query, args := sqlbuilder.Buildf(`INSERT INTO eligibility_inquiry_event
		(file_id, inquiry_ts, source_channel, payer_id, member_id, provider_npi,
			service_type_codes, place_of_service, network_indicator, coverage_status, raw_270_ref) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (member_id, inquiry_ts) DO UPDATE SET
			source_channel = EXCLUDED.source_channel,
			payer_id = EXCLUDED.payer_id,
			provider_npi = EXCLUDED.provider_npi,
			service_type_codes = EXCLUDED.service_type_codes,
			place_of_service = EXCLUDED.place_of_service,
			network_indicator = EXCLUDED.network_indicator,
			coverage_status = EXCLUDED.coverage_status,
			raw_270_ref = EXCLUDED.raw_270_ref`,
		inquiry.FileID, inquiry.InquiryTimestamp, inquiry.SourceChannel, inquiry.PayerID,
		inquiry.MemberID, inquiry.ProviderNPI, pq.Array(inquiry.ServiceTypeCodes),
		inquiry.PlaceOfService, inquiry.NetworkIndicator, inquiry.CoverageStatus,
		inquiry.RawTransaction).
		BuildWithFlavor(sqlFlavor)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) UpsertPriorAuthorization(ctx context.Context, auth models.PriorAuthorization) error {
	query, args := sqlbuilder.Buildf(`INSERT INTO prior_auth_request
		(file_id, pa_id, request_ts, decision_ts, status, member_id,
			requesting_provider_npi, servicing_provider_npi, service_from_date, service_to_date,
			diagnosis_codes, procedure_codes, clinical_type, request_category) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (pa_id) DO UPDATE SET
			request_ts = EXCLUDED.request_ts,
			decision_ts = EXCLUDED.decision_ts,
			status = EXCLUDED.status,
			member_id = EXCLUDED.member_id,
			requesting_provider_npi = EXCLUDED.requesting_provider_npi,
			servicing_provider_npi = EXCLUDED.servicing_provider_npi,
			service_from_date = EXCLUDED.service_from_date,
			service_to_date = EXCLUDED.service_to_date,
			diagnosis_codes = EXCLUDED.diagnosis_codes,
			procedure_codes = EXCLUDED.procedure_codes,
			clinical_type = EXCLUDED.clinical_type,
			request_category = EXCLUDED.request_category`,
		auth.FileID, auth.AuthorizationID, auth.RequestTimestamp, auth.DecisionTimestamp,
		auth.Status, auth.MemberID, auth.RequestingProviderNPI, auth.ServicingProviderNPI,
		auth.ServiceFromDate, auth.ServiceToDate, pq.Array(auth.DiagnosisCodes),
		pq.Array(auth.ProcedureCodes), auth.ClinicalType, auth.RequestCategory).
		BuildWithFlavor(sqlFlavor)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) UpsertClaimHeader(ctx context.Context, header models.ClaimHeader) error {
	query, args := sqlbuilder.Buildf(`INSERT INTO claim_header
		(file_id, claim_id, member_id, claim_type, from_date, thru_date, received_ts,
			claim_status, billing_provider_npi, rendering_provider_npi, facility_npi,
			total_billed_amt, total_allowed_amt, total_paid_amt) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (claim_id) DO UPDATE SET
			member_id = EXCLUDED.member_id,
			claim_type = EXCLUDED.claim_type,
			from_date = EXCLUDED.from_date,
			thru_date = EXCLUDED.thru_date,
			received_ts = EXCLUDED.received_ts,
			claim_status = EXCLUDED.claim_status,
			billing_provider_npi = EXCLUDED.billing_provider_npi,
			rendering_provider_npi = EXCLUDED.rendering_provider_npi,
			facility_npi = EXCLUDED.facility_npi,
			total_billed_amt = EXCLUDED.total_billed_amt,
			total_allowed_amt = EXCLUDED.total_allowed_amt,
			total_paid_amt = EXCLUDED.total_paid_amt`,
		header.FileID, header.ClaimID, header.MemberID, header.ClaimType,
		header.FromDate, header.ThruDate, header.ReceivedTimestamp, header.ClaimStatus,
		header.BillingProviderNPI, header.RenderingProviderNPI, header.FacilityNPI,
		header.TotalBilledAmount, header.TotalAllowedAmount, header.TotalPaidAmount).
		BuildWithFlavor(sqlFlavor)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ReplaceClaimLines swaps a claim's service lines wholesale inside one
// transaction, bulk-loading the new set with COPY. Line identity is claim id
// + line number, so a straight replace keeps the import idempotent.
func (r *Repository) ReplaceClaimLines(ctx context.Context, claimID string, lines []models.ClaimLine) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if err != nil {
			if err1 := tx.Rollback(); err1 != nil {
				err = errors.Wrapf(err, "failed to rollback transaction: %s", err1.Error())
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM claim_line WHERE claim_id = $1", claimID); err != nil {
		return errors.Wrapf(err, "could not clear existing lines for claim %s", claimID)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("claim_line",
		"claim_id", "line_num", "service_date", "procedure_code", "revenue_code",
		"modifier1", "units", "billed_amt", "allowed_amt", "paid_amt", "line_status"))
	if err != nil {
		return errors.Wrap(err, "failed to prepare claim line copy")
	}

	for _, line := range lines {
		if _, err = stmt.Exec(line.ClaimID, line.LineNumber, line.ServiceDate,
			line.ProcedureCode, line.RevenueCode, line.Modifier, line.Units,
			line.BilledAmount, line.AllowedAmount, line.PaidAmount, line.LineStatus); err != nil {
			return errors.Wrapf(err, "could not create line %d for claim %s", line.LineNumber, claimID)
		}
	}

	if _, err = stmt.Exec(); err != nil {
		return errors.Wrap(err, "failed to flush claim line copy")
	}
	if err = stmt.Close(); err != nil {
		return errors.Wrap(err, "failed to close claim line copy")
	}

	return tx.Commit()
}

func (r *Repository) UpsertMember(ctx context.Context, member models.Member) error {
	query, args := sqlbuilder.Buildf(`INSERT INTO member
		(member_id, first_name, last_name, date_of_birth, gender,
			address_street, address_city, address_state, address_zip, phone, email,
			plan_type, network, geographic_region, enrollment_date, enrollment_status,
			termination_date, pcp_npi, pcp_name, pcp_specialty, risk_score, hcc_score) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (member_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			address_street = EXCLUDED.address_street,
			address_city = EXCLUDED.address_city,
			address_state = EXCLUDED.address_state,
			address_zip = EXCLUDED.address_zip,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			plan_type = EXCLUDED.plan_type,
			network = EXCLUDED.network,
			geographic_region = EXCLUDED.geographic_region,
			enrollment_date = EXCLUDED.enrollment_date,
			enrollment_status = EXCLUDED.enrollment_status,
			termination_date = EXCLUDED.termination_date,
			pcp_npi = EXCLUDED.pcp_npi,
			pcp_name = EXCLUDED.pcp_name,
			pcp_specialty = EXCLUDED.pcp_specialty,
			risk_score = EXCLUDED.risk_score,
			hcc_score = EXCLUDED.hcc_score`,
		member.MemberID, member.FirstName, member.LastName, member.DateOfBirth, member.Gender,
		member.Address.Street, member.Address.City, member.Address.State, member.Address.ZipCode,
		member.Phone, member.Email, member.PlanType, member.Network, member.GeographicRegion,
		member.EnrollmentDate, member.EnrollmentStatus, nullableDate(member.TerminationDate),
		member.PrimaryCare.NPI, member.PrimaryCare.Name, member.PrimaryCare.Specialty,
		member.RiskScore, member.HCCScore).
		BuildWithFlavor(sqlFlavor)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	for _, condition := range member.ChronicConditions {
		query, args := sqlbuilder.Buildf(`INSERT INTO member_chronic_condition
			(member_id, icd10_code, description, diagnosis_date) VALUES
			(%s, %s, %s, %s)
			ON CONFLICT (member_id, icd10_code) DO UPDATE SET
				description = EXCLUDED.description,
				diagnosis_date = EXCLUDED.diagnosis_date`,
			member.MemberID, condition.ICD10Code, condition.Description, condition.DiagnosisDate).
			BuildWithFlavor(sqlFlavor)

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "could not create chronic condition %s for member %s",
				condition.ICD10Code, member.MemberID)
		}
	}

	return nil
}

func (r *Repository) UpsertRxBenefitInquiry(ctx context.Context, inquiry models.RxBenefitInquiry) error {
	query, args := sqlbuilder.Buildf(`INSERT INTO rx_benefit_inquiry
		(inquiry_id, member_id, inquiry_date, ndc_code, drug_name, drug_class,
			prescriber_npi, pharmacy_npi, days_supply, quantity, coverage_status,
			copay_amount, indication, raw_transaction_data) VALUES
		(%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (inquiry_id) DO UPDATE SET
			member_id = EXCLUDED.member_id,
			inquiry_date = EXCLUDED.inquiry_date,
			ndc_code = EXCLUDED.ndc_code,
			drug_name = EXCLUDED.drug_name,
			drug_class = EXCLUDED.drug_class,
			prescriber_npi = EXCLUDED.prescriber_npi,
			pharmacy_npi = EXCLUDED.pharmacy_npi,
			days_supply = EXCLUDED.days_supply,
			quantity = EXCLUDED.quantity,
			coverage_status = EXCLUDED.coverage_status,
			copay_amount = EXCLUDED.copay_amount,
			indication = EXCLUDED.indication,
			raw_transaction_data = EXCLUDED.raw_transaction_data`,
		inquiry.InquiryID, inquiry.MemberID, inquiry.InquiryDate, inquiry.NDCCode,
		inquiry.DrugName, inquiry.DrugClass, inquiry.PrescriberNPI, inquiry.PharmacyNPI,
		inquiry.DaysSupply, inquiry.Quantity, inquiry.CoverageStatus, inquiry.CopayAmount,
		inquiry.Indication, inquiry.RawTransactionData).
		BuildWithFlavor(sqlFlavor)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// nullableDate maps the export's empty termination date to NULL.
func nullableDate(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
