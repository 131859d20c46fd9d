package records

import "fmt"

// Result codes are passed through from the cluster; the codec never acts on them.

type CreateAccountResult uint32

const (
	AccountResultOK                                   CreateAccountResult = 0
	AccountResultLinkedEventFailed                    CreateAccountResult = 1
	AccountResultLinkedEventChainOpen                 CreateAccountResult = 2
	AccountResultImportedEventExpected                CreateAccountResult = 22
	AccountResultImportedEventNotExpected             CreateAccountResult = 23
	AccountResultTimestampMustBeZero                  CreateAccountResult = 3
	AccountResultImportedEventTimestampOutOfRange     CreateAccountResult = 24
	AccountResultImportedEventTimestampMustNotAdvance CreateAccountResult = 25
	AccountResultReservedField                        CreateAccountResult = 4
	AccountResultReservedFlag                         CreateAccountResult = 5
	AccountResultIDMustNotBeZero                      CreateAccountResult = 6
	AccountResultIDMustNotBeIntMax                    CreateAccountResult = 7
	AccountResultExistsWithDifferentFlags             CreateAccountResult = 15
	AccountResultExistsWithDifferentUserData128       CreateAccountResult = 16
	AccountResultExistsWithDifferentUserData64        CreateAccountResult = 17
	AccountResultExistsWithDifferentUserData32        CreateAccountResult = 18
	AccountResultExistsWithDifferentLedger            CreateAccountResult = 19
	AccountResultExistsWithDifferentCode              CreateAccountResult = 20
	AccountResultExists                               CreateAccountResult = 21
	AccountResultFlagsAreMutuallyExclusive            CreateAccountResult = 8
	AccountResultDebitsPendingMustBeZero              CreateAccountResult = 9
	AccountResultDebitsPostedMustBeZero               CreateAccountResult = 10
	AccountResultCreditsPendingMustBeZero             CreateAccountResult = 11
	AccountResultCreditsPostedMustBeZero              CreateAccountResult = 12
	AccountResultLedgerMustNotBeZero                  CreateAccountResult = 13
	AccountResultCodeMustNotBeZero                    CreateAccountResult = 14
	AccountResultImportedEventTimestampMustNotRegress CreateAccountResult = 26
)

var createAccountResultNames = map[CreateAccountResult]string{
	AccountResultOK:                                   "ok",
	AccountResultLinkedEventFailed:                    "linked_event_failed",
	AccountResultLinkedEventChainOpen:                 "linked_event_chain_open",
	AccountResultImportedEventExpected:                "imported_event_expected",
	AccountResultImportedEventNotExpected:             "imported_event_not_expected",
	AccountResultTimestampMustBeZero:                  "timestamp_must_be_zero",
	AccountResultImportedEventTimestampOutOfRange:     "imported_event_timestamp_out_of_range",
	AccountResultImportedEventTimestampMustNotAdvance: "imported_event_timestamp_must_not_advance",
	AccountResultReservedField:                        "reserved_field",
	AccountResultReservedFlag:                         "reserved_flag",
	AccountResultIDMustNotBeZero:                      "id_must_not_be_zero",
	AccountResultIDMustNotBeIntMax:                    "id_must_not_be_int_max",
	AccountResultExistsWithDifferentFlags:             "exists_with_different_flags",
	AccountResultExistsWithDifferentUserData128:       "exists_with_different_user_data_128",
	AccountResultExistsWithDifferentUserData64:        "exists_with_different_user_data_64",
	AccountResultExistsWithDifferentUserData32:        "exists_with_different_user_data_32",
	AccountResultExistsWithDifferentLedger:            "exists_with_different_ledger",
	AccountResultExistsWithDifferentCode:              "exists_with_different_code",
	AccountResultExists:                               "exists",
	AccountResultFlagsAreMutuallyExclusive:            "flags_are_mutually_exclusive",
	AccountResultDebitsPendingMustBeZero:              "debits_pending_must_be_zero",
	AccountResultDebitsPostedMustBeZero:               "debits_posted_must_be_zero",
	AccountResultCreditsPendingMustBeZero:             "credits_pending_must_be_zero",
	AccountResultCreditsPostedMustBeZero:              "credits_posted_must_be_zero",
	AccountResultLedgerMustNotBeZero:                  "ledger_must_not_be_zero",
	AccountResultCodeMustNotBeZero:                    "code_must_not_be_zero",
	AccountResultImportedEventTimestampMustNotRegress: "imported_event_timestamp_must_not_regress",
}

func (r CreateAccountResult) String() string {
	if name, ok := createAccountResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("createAccountResult(%d)", uint32(r))
}

type CreateTransferResult uint32

const (
	TransferResultOK                                              CreateTransferResult = 0
	TransferResultLinkedEventFailed                               CreateTransferResult = 1
	TransferResultLinkedEventChainOpen                            CreateTransferResult = 2
	TransferResultImportedEventExpected                           CreateTransferResult = 56
	TransferResultImportedEventNotExpected                        CreateTransferResult = 57
	TransferResultTimestampMustBeZero                             CreateTransferResult = 3
	TransferResultImportedEventTimestampOutOfRange                CreateTransferResult = 58
	TransferResultImportedEventTimestampMustNotAdvance            CreateTransferResult = 59
	TransferResultReservedFlag                                    CreateTransferResult = 4
	TransferResultIDMustNotBeZero                                 CreateTransferResult = 5
	TransferResultIDMustNotBeIntMax                               CreateTransferResult = 6
	TransferResultExistsWithDifferentFlags                        CreateTransferResult = 36
	TransferResultExistsWithDifferentPendingID                    CreateTransferResult = 40
	TransferResultExistsWithDifferentTimeout                      CreateTransferResult = 44
	TransferResultExistsWithDifferentDebitAccountID               CreateTransferResult = 37
	TransferResultExistsWithDifferentCreditAccountID              CreateTransferResult = 38
	TransferResultExistsWithDifferentAmount                       CreateTransferResult = 39
	TransferResultExistsWithDifferentUserData128                  CreateTransferResult = 41
	TransferResultExistsWithDifferentUserData64                   CreateTransferResult = 42
	TransferResultExistsWithDifferentUserData32                   CreateTransferResult = 43
	TransferResultExistsWithDifferentLedger                       CreateTransferResult = 67
	TransferResultExistsWithDifferentCode                         CreateTransferResult = 45
	TransferResultExists                                          CreateTransferResult = 46
	TransferResultIDAlreadyFailed                                 CreateTransferResult = 68
	TransferResultFlagsAreMutuallyExclusive                       CreateTransferResult = 7
	TransferResultDebitAccountIDMustNotBeZero                     CreateTransferResult = 8
	TransferResultDebitAccountIDMustNotBeIntMax                   CreateTransferResult = 9
	TransferResultCreditAccountIDMustNotBeZero                    CreateTransferResult = 10
	TransferResultCreditAccountIDMustNotBeIntMax                  CreateTransferResult = 11
	TransferResultAccountsMustBeDifferent                         CreateTransferResult = 12
	TransferResultPendingIDMustBeZero                             CreateTransferResult = 13
	TransferResultPendingIDMustNotBeZero                          CreateTransferResult = 14
	TransferResultPendingIDMustNotBeIntMax                        CreateTransferResult = 15
	TransferResultPendingIDMustBeDifferent                        CreateTransferResult = 16
	TransferResultTimeoutReservedForPendingTransfer               CreateTransferResult = 17
	TransferResultClosingTransferMustBePending                    CreateTransferResult = 64
	TransferResultLedgerMustNotBeZero                             CreateTransferResult = 19
	TransferResultCodeMustNotBeZero                               CreateTransferResult = 20
	TransferResultDebitAccountNotFound                            CreateTransferResult = 21
	TransferResultCreditAccountNotFound                           CreateTransferResult = 22
	TransferResultAccountsMustHaveTheSameLedger                   CreateTransferResult = 23
	TransferResultTransferMustHaveTheSameLedgerAsAccounts         CreateTransferResult = 24
	TransferResultPendingTransferNotFound                         CreateTransferResult = 25
	TransferResultPendingTransferNotPending                       CreateTransferResult = 26
	TransferResultPendingTransferHasDifferentDebitAccountID       CreateTransferResult = 27
	TransferResultPendingTransferHasDifferentCreditAccountID      CreateTransferResult = 28
	TransferResultPendingTransferHasDifferentLedger               CreateTransferResult = 29
	TransferResultPendingTransferHasDifferentCode                 CreateTransferResult = 30
	TransferResultExceedsPendingTransferAmount                    CreateTransferResult = 31
	TransferResultPendingTransferHasDifferentAmount               CreateTransferResult = 32
	TransferResultPendingTransferAlreadyPosted                    CreateTransferResult = 33
	TransferResultPendingTransferAlreadyVoided                    CreateTransferResult = 34
	TransferResultPendingTransferExpired                          CreateTransferResult = 35
	TransferResultImportedEventTimestampMustNotRegress            CreateTransferResult = 60
	TransferResultImportedEventTimestampMustPostdateDebitAccount  CreateTransferResult = 61
	TransferResultImportedEventTimestampMustPostdateCreditAccount CreateTransferResult = 62
	TransferResultImportedEventTimeoutMustBeZero                  CreateTransferResult = 63
	TransferResultDebitAccountAlreadyClosed                       CreateTransferResult = 65
	TransferResultCreditAccountAlreadyClosed                      CreateTransferResult = 66
	TransferResultOverflowsDebitsPending                          CreateTransferResult = 47
	TransferResultOverflowsCreditsPending                         CreateTransferResult = 48
	TransferResultOverflowsDebitsPosted                           CreateTransferResult = 49
	TransferResultOverflowsCreditsPosted                          CreateTransferResult = 50
	TransferResultOverflowsDebits                                 CreateTransferResult = 51
	TransferResultOverflowsCredits                                CreateTransferResult = 52
	TransferResultOverflowsTimeout                                CreateTransferResult = 53
	TransferResultExceedsCredits                                  CreateTransferResult = 54
	TransferResultExceedsDebits                                   CreateTransferResult = 55
)

var createTransferResultNames = map[CreateTransferResult]string{
	TransferResultOK:                                              "ok",
	TransferResultLinkedEventFailed:                               "linked_event_failed",
	TransferResultLinkedEventChainOpen:                            "linked_event_chain_open",
	TransferResultImportedEventExpected:                           "imported_event_expected",
	TransferResultImportedEventNotExpected:                        "imported_event_not_expected",
	TransferResultTimestampMustBeZero:                             "timestamp_must_be_zero",
	TransferResultImportedEventTimestampOutOfRange:                "imported_event_timestamp_out_of_range",
	TransferResultImportedEventTimestampMustNotAdvance:            "imported_event_timestamp_must_not_advance",
	TransferResultReservedFlag:                                    "reserved_flag",
	TransferResultIDMustNotBeZero:                                 "id_must_not_be_zero",
	TransferResultIDMustNotBeIntMax:                               "id_must_not_be_int_max",
	TransferResultExistsWithDifferentFlags:                        "exists_with_different_flags",
	TransferResultExistsWithDifferentPendingID:                    "exists_with_different_pending_id",
	TransferResultExistsWithDifferentTimeout:                      "exists_with_different_timeout",
	TransferResultExistsWithDifferentDebitAccountID:               "exists_with_different_debit_account_id",
	TransferResultExistsWithDifferentCreditAccountID:              "exists_with_different_credit_account_id",
	TransferResultExistsWithDifferentAmount:                       "exists_with_different_amount",
	TransferResultExistsWithDifferentUserData128:                  "exists_with_different_user_data_128",
	TransferResultExistsWithDifferentUserData64:                   "exists_with_different_user_data_64",
	TransferResultExistsWithDifferentUserData32:                   "exists_with_different_user_data_32",
	TransferResultExistsWithDifferentLedger:                       "exists_with_different_ledger",
	TransferResultExistsWithDifferentCode:                         "exists_with_different_code",
	TransferResultExists:                                          "exists",
	TransferResultIDAlreadyFailed:                                 "id_already_failed",
	TransferResultFlagsAreMutuallyExclusive:                       "flags_are_mutually_exclusive",
	TransferResultDebitAccountIDMustNotBeZero:                     "debit_account_id_must_not_be_zero",
	TransferResultDebitAccountIDMustNotBeIntMax:                   "debit_account_id_must_not_be_int_max",
	TransferResultCreditAccountIDMustNotBeZero:                    "credit_account_id_must_not_be_zero",
	TransferResultCreditAccountIDMustNotBeIntMax:                  "credit_account_id_must_not_be_int_max",
	TransferResultAccountsMustBeDifferent:                         "accounts_must_be_different",
	TransferResultPendingIDMustBeZero:                             "pending_id_must_be_zero",
	TransferResultPendingIDMustNotBeZero:                          "pending_id_must_not_be_zero",
	TransferResultPendingIDMustNotBeIntMax:                        "pending_id_must_not_be_int_max",
	TransferResultPendingIDMustBeDifferent:                        "pending_id_must_be_different",
	TransferResultTimeoutReservedForPendingTransfer:               "timeout_reserved_for_pending_transfer",
	TransferResultClosingTransferMustBePending:                    "closing_transfer_must_be_pending",
	TransferResultLedgerMustNotBeZero:                             "ledger_must_not_be_zero",
	TransferResultCodeMustNotBeZero:                               "code_must_not_be_zero",
	TransferResultDebitAccountNotFound:                            "debit_account_not_found",
	TransferResultCreditAccountNotFound:                           "credit_account_not_found",
	TransferResultAccountsMustHaveTheSameLedger:                   "accounts_must_have_the_same_ledger",
	TransferResultTransferMustHaveTheSameLedgerAsAccounts:         "transfer_must_have_the_same_ledger_as_accounts",
	TransferResultPendingTransferNotFound:                         "pending_transfer_not_found",
	TransferResultPendingTransferNotPending:                       "pending_transfer_not_pending",
	TransferResultPendingTransferHasDifferentDebitAccountID:       "pending_transfer_has_different_debit_account_id",
	TransferResultPendingTransferHasDifferentCreditAccountID:      "pending_transfer_has_different_credit_account_id",
	TransferResultPendingTransferHasDifferentLedger:               "pending_transfer_has_different_ledger",
	TransferResultPendingTransferHasDifferentCode:                 "pending_transfer_has_different_code",
	TransferResultExceedsPendingTransferAmount:                    "exceeds_pending_transfer_amount",
	TransferResultPendingTransferHasDifferentAmount:               "pending_transfer_has_different_amount",
	TransferResultPendingTransferAlreadyPosted:                    "pending_transfer_already_posted",
	TransferResultPendingTransferAlreadyVoided:                    "pending_transfer_already_voided",
	TransferResultPendingTransferExpired:                          "pending_transfer_expired",
	TransferResultImportedEventTimestampMustNotRegress:            "imported_event_timestamp_must_not_regress",
	TransferResultImportedEventTimestampMustPostdateDebitAccount:  "imported_event_timestamp_must_postdate_debit_account",
	TransferResultImportedEventTimestampMustPostdateCreditAccount: "imported_event_timestamp_must_postdate_credit_account",
	TransferResultImportedEventTimeoutMustBeZero:                  "imported_event_timeout_must_be_zero",
	TransferResultDebitAccountAlreadyClosed:                       "debit_account_already_closed",
	TransferResultCreditAccountAlreadyClosed:                      "credit_account_already_closed",
	TransferResultOverflowsDebitsPending:                          "overflows_debits_pending",
	TransferResultOverflowsCreditsPending:                         "overflows_credits_pending",
	TransferResultOverflowsDebitsPosted:                           "overflows_debits_posted",
	TransferResultOverflowsCreditsPosted:                          "overflows_credits_posted",
	TransferResultOverflowsDebits:                                 "overflows_debits",
	TransferResultOverflowsCredits:                                "overflows_credits",
	TransferResultOverflowsTimeout:                                "overflows_timeout",
	TransferResultExceedsCredits:                                  "exceeds_credits",
	TransferResultExceedsDebits:                                   "exceeds_debits",
}

func (r CreateTransferResult) String() string {
	if name, ok := createTransferResultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("createTransferResult(%d)", uint32(r))
}
