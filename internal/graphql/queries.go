package graphql

const pingQuery = `query Ping { __typename }`

const fetchAppQuery = `
query FetchApp($app_id: String!) {
  app(
    where: {
      id: { _eq: $app_id }
      status: { _eq: "active" }
      is_archived: { _eq: false }
      deleted_at: { _is_null: true }
    }
  ) {
    id
    is_staging
    actions(where: { action: { _eq: "" } }) {
      action
      external_nullifier
      redirects {
        redirect_uri
      }
    }
  }
}`

const getAppMetadataQuery = `
query GetAppMetadata($app_id: String!) {
  app_metadata(
    where: {
      app_id: { _eq: $app_id }
      verification_status: { _eq: "verified" }
      app: { is_archived: { _eq: false }, deleted_at: { _is_null: true } }
    }
  ) {
    name
    app_id
    logo_img_url
    showcase_img_urls
    hero_image_url
    world_app_description
    world_app_button_text
    category
    description
    integration_url
    app_website_url
    source_code_url
    whitelisted_addresses
    app_mode
    support_email
    supported_countries
    supported_languages
    app_rating
    verification_status
    app {
      team {
        name
      }
    }
  }
}`

const fetchInviteQuery = `
query FetchInvite($id: String!) {
  invite(where: { id: { _eq: $id } }) {
    id
    team_id
    email
    expires_at
  }
}`

const createTeamMutation = `
mutation CreateTeam($team: team_insert_input!) {
  insert_team_one(object: $team) {
    id
  }
}`

// create_team_with_invite is a tracked Postgres function. It deletes the
// invite first and returns no row without writing when the invite is gone.
const createTeamWithInviteMutation = `
mutation CreateTeamWithInvite($args: create_team_with_invite_args!) {
  create_team_with_invite(args: $args) {
    id
  }
}`
