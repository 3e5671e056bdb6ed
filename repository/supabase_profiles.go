package repository

import (
	"context"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// SupabaseProfilesRepo ProfilesRepository against the remote profiles table.
type SupabaseProfilesRepo struct {
	client *supabase.Client
}

func NewSupabaseProfilesRepo(client *supabase.Client) *SupabaseProfilesRepo {
	return &SupabaseProfilesRepo{client: client}
}

func (r *SupabaseProfilesRepo) GetByAuthUID(ctx context.Context, authUID string) (*domain.Profile, error) {
	q := supabase.NewQuery().
		Columns("auth_uid, email, first_name, last_name, phone, address, zip_code, id_number, date_of_birth, photo_url, is_house_committee, committee_payment_link").
		Eq("auth_uid", authUID)
	row := &domain.Profile{}
	found, err := r.client.SelectMaybe(ctx, "profiles", q, row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return row, nil
}

func (r *SupabaseProfilesRepo) Upsert(ctx context.Context, profile domain.Profile) error {
	return r.client.Upsert(ctx, "profiles", profile, "auth_uid", nil)
}

func (r *SupabaseProfilesRepo) CommitteeMembers(ctx context.Context) ([]domain.CommitteeMember, error) {
	q := supabase.NewQuery().
		Columns("auth_uid, first_name, last_name, committee_payment_link, is_house_committee").
		Eq("is_house_committee", true).
		NotIsNull("committee_payment_link")
	var rows []domain.CommitteeMember
	if err := r.client.Select(ctx, "profiles", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SupabasePaymentsRepo PaymentsRepository against the remote
// house_fee_payments table.
type SupabasePaymentsRepo struct {
	client *supabase.Client
}

func NewSupabasePaymentsRepo(client *supabase.Client) *SupabasePaymentsRepo {
	return &SupabasePaymentsRepo{client: client}
}

func (r *SupabasePaymentsRepo) Create(ctx context.Context, row NewPayment) (*domain.HouseFeePayment, error) {
	body := map[string]any{
		"tenant_auth_user_id":    row.TenantAuthUserID,
		"committee_auth_user_id": row.CommitteeAuthUserID,
		"amount":                 row.Amount,
		"month_year":             row.MonthYear,
		"status":                 domain.PaymentInitiated,
	}
	created := &domain.HouseFeePayment{}
	if err := r.client.Insert(ctx, "house_fee_payments", body, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *SupabasePaymentsRepo) MarkPaid(ctx context.Context, id string) (*domain.HouseFeePayment, error) {
	patch := map[string]any{"status": domain.PaymentPaid}
	updated := &domain.HouseFeePayment{}
	q := supabase.NewQuery().Eq("id", id)
	if err := r.client.UpdateSingle(ctx, "house_fee_payments", patch, q, updated); err != nil {
		if supabase.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SupabaseAdminRepo AdminRepository calling the privileged backend
// functions through the RPC interface.
type SupabaseAdminRepo struct {
	client *supabase.Client
}

func NewSupabaseAdminRepo(client *supabase.Client) *SupabaseAdminRepo {
	return &SupabaseAdminRepo{client: client}
}

func (r *SupabaseAdminRepo) ListAllProfiles(ctx context.Context, adminNumber, adminPassword string) ([]domain.AdminProfile, error) {
	args := map[string]string{
		"admin_req_number":   adminNumber,
		"admin_req_password": adminPassword,
	}
	var rows []domain.AdminProfile
	if err := r.client.RPC(ctx, "get_all_profiles_as_admin", args, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SupabaseAdminRepo) DeleteUser(ctx context.Context, targetAuthUID, adminNumber, adminPassword string) error {
	args := map[string]string{
		"target_user_id":     targetAuthUID,
		"admin_req_number":   adminNumber,
		"admin_req_password": adminPassword,
	}
	return r.client.RPC(ctx, "delete_user_as_admin", args, nil)
}
