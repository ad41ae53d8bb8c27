package postgresql

// schemaDDL is idempotent and runs on every start.
//
// artists.name is unique so picture reconciliation can upsert by name.
// Deleting an artist keeps its pictures (artist_id becomes NULL, the text name stays).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS artists (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(255) NOT NULL,
	bio         TEXT,
	birth_date  TIMESTAMPTZ,
	death_date  TIMESTAMPTZ,
	nationality VARCHAR(255),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT artists_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS pictures (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	artist      VARCHAR(255) NOT NULL,
	artist_id   BIGINT REFERENCES artists(id) ON DELETE SET NULL,
	year        INT,
	description TEXT,
	image_url   TEXT NOT NULL,
	style       VARCHAR(255),
	price       NUMERIC(10, 2),
	size        VARCHAR(255),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pictures_artist_id ON pictures (artist_id);
CREATE INDEX IF NOT EXISTS idx_pictures_created_at ON pictures (created_at);

CREATE TABLE IF NOT EXISTS exhibitions (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	description TEXT,
	start_date  TIMESTAMPTZ NOT NULL,
	end_date    TIMESTAMPTZ NOT NULL,
	location    VARCHAR(255),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS exhibition_pictures (
	id            BIGSERIAL PRIMARY KEY,
	exhibition_id BIGINT NOT NULL REFERENCES exhibitions(id) ON DELETE CASCADE,
	picture_id    BIGINT NOT NULL REFERENCES pictures(id) ON DELETE CASCADE,
	display_order INT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_exhibition_pictures_exhibition_id ON exhibition_pictures (exhibition_id);
CREATE INDEX IF NOT EXISTS idx_exhibition_pictures_picture_id ON exhibition_pictures (picture_id);
`
